// Package builtin declares the tool specs shipped with specd and specctl.
// Importing it for side effects fills the default catalog.
package builtin

import (
	"github.com/danmuck/cmdspec"
	"github.com/danmuck/cmdspec/catalog"
)

// Tar archives paths into a file.
type Tar struct {
	Create  bool     `arg:"flag=-c" json:"create"`
	Extract bool     `arg:"flag=-x" json:"extract"`
	Gzip    bool     `arg:"flag=-z" json:"gzip"`
	Archive string   `arg:"option=-f" json:"archive"`
	Paths   []string `arg:"" json:"paths"`
}

// Rsync mirrors a source tree to a destination, local or remote.
type Rsync struct {
	Archive  bool     `arg:"flag=-a" json:"archive"`
	Delete   bool     `arg:"flag=--delete" json:"delete"`
	Excludes []string `arg:"option=--exclude" json:"excludes"`
	Source   string   `arg:"" json:"source"`
	Dest     string   `arg:"" json:"dest"`
}

// Mongodump snapshots a database the way the edge backup jobs do.
type Mongodump struct {
	Host *string `arg:"option=--host" json:"host"`
	Port *int    `arg:"option=--port" json:"port"`
	DB   string  `arg:"option=--db" json:"db"`
	Gzip bool    `arg:"flag=--gzip" json:"gzip"`
	Out  string  `arg:"option=--out" json:"out"`
}

// Ping probes a host. The executable is computed per instance so the same
// record covers both address families.
type Ping struct {
	IPv6  bool   `json:"ipv6"`
	Count *int   `arg:"option=-c" json:"count"`
	Host  string `arg:"" json:"host"`
}

func pingExecutable(p *Ping) string {
	if p.IPv6 {
		return "ping6"
	}
	return "ping"
}

var (
	tarSpec       = cmdspec.MustCompile(Tar{}, cmdspec.Executable("tar"))
	rsyncSpec     = cmdspec.MustCompile(Rsync{}, cmdspec.Executable("rsync"))
	mongodumpSpec = cmdspec.MustCompile(Mongodump{}, cmdspec.Executable("mongodump"))
	pingSpec      = cmdspec.MustCompile(Ping{}, cmdspec.ExecutableFunc(pingExecutable))
)

func init() {
	catalog.Register(catalog.Entry{
		Name:        "tar",
		Description: "archive or extract a file tree",
		Spec:        tarSpec,
		New:         func() any { return &Tar{} },
	})
	catalog.Register(catalog.Entry{
		Name:        "rsync",
		Description: "mirror a source tree to a destination",
		Spec:        rsyncSpec,
		New:         func() any { return &Rsync{} },
	})
	catalog.Register(catalog.Entry{
		Name:        "mongodump",
		Description: "dump a database to an output directory",
		Spec:        mongodumpSpec,
		New:         func() any { return &Mongodump{} },
	})
	catalog.Register(catalog.Entry{
		Name:        "ping",
		Description: "probe a host over ICMP",
		Spec:        pingSpec,
		New:         func() any { return &Ping{} },
	})
}
