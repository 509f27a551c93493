package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Info describes the running binary.
type Info struct {
	Version  string
	Revision string
	Modified bool
	Tags     string
	Go       string
}

// Read collects the module version and VCS stamp recorded at build time.
func Read() Info {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return Info{Version: "dev"}
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) Info {
	out := Info{Version: info.Main.Version, Go: info.GoVersion}
	if out.Version == "" || out.Version == "(devel)" {
		out.Version = "dev"
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "-tags":
			out.Tags = setting.Value
		case "vcs.revision":
			out.Revision = setting.Value
		case "vcs.modified":
			out.Modified = setting.Value == "true"
		}
	}
	return out
}

// Version returns the module version or "dev" when unset.
func Version() string {
	return Read().Version
}

// String renders the version followed by the short revision and tags when
// they are known, e.g. "v1.2.0 (3f2a9c1-dirty, tags: netgo)".
func (i Info) String() string {
	var extra []string
	if rev := i.Revision; rev != "" {
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if i.Modified {
			rev += "-dirty"
		}
		extra = append(extra, rev)
	}
	if i.Tags != "" {
		extra = append(extra, "tags: "+i.Tags)
	}
	if len(extra) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(extra, ", "))
}
