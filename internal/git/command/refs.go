package command

import (
	"fmt"
	"strings"
)

// BranchList prints "[*] name sha subject" lines with full shas.
func BranchList(includeRemote bool) Command {
	return New("branch").
		Arg("-v", "--no-color", "--no-abbrev").
		ArgIf(includeRemote, "-a").
		Build()
}

func CreateBranch(name, startPoint string) (Command, error) {
	name, err := requireName("branch", name)
	if err != nil {
		return Command{}, err
	}
	if startPoint != "" {
		if startPoint, err = requireRef(startPoint); err != nil {
			return Command{}, err
		}
	}
	return New("branch").Subject(name, startPoint).Build(), nil
}

func DeleteBranch(name string, force bool) (Command, error) {
	name, err := requireName("branch", name)
	if err != nil {
		return Command{}, err
	}
	flag := "-d"
	if force {
		flag = "-D"
	}
	return New("branch").Arg(flag).Subject(name).Build(), nil
}

func TagList() Command {
	return New("tag").Arg("--list").Build()
}

// ShowRefTags lists tags with their peeled targets. git exits 1 when the
// repository has no tags.
func ShowRefTags() Command {
	return New("show-ref").Arg("--tags", "--dereference").Build()
}

// ShowRefs lists every branch, remote-tracking branch and tag, with
// annotated tags peeled.
func ShowRefs() Command {
	return New("show-ref").Arg("--dereference").Build()
}

// CreateTag creates a lightweight tag, or an annotated one when message is set.
func CreateTag(name, startPoint, message string) (Command, error) {
	name, err := requireName("tag", name)
	if err != nil {
		return Command{}, err
	}
	if startPoint != "" {
		if startPoint, err = requireRef(startPoint); err != nil {
			return Command{}, err
		}
	}
	b := New("tag")
	if strings.TrimSpace(message) != "" {
		b.Arg("-a", "-m", message)
	}
	return b.Subject(name, startPoint).Build(), nil
}

func DeleteTag(name string) (Command, error) {
	name, err := requireName("tag", name)
	if err != nil {
		return Command{}, err
	}
	return New("tag").Arg("-d").Subject(name).Build(), nil
}

func requireName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s name required", ErrInvalidInput, kind)
	}
	if strings.HasPrefix(name, "-") || strings.ContainsAny(name, " \t\n~^:?*[\\") {
		return "", fmt.Errorf("%w: invalid %s name %q", ErrInvalidInput, kind, name)
	}
	return name, nil
}
