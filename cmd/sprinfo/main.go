// Command sprinfo prints the fields of Pekka Kana 2 sprite prototype files.
//
// Usage:
//
//	sprinfo [flags] file.spr...
//	sprinfo -dir sprites/
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
)

var (
	format = flag.String("format", "text", "output format, either text or json")
	query  = flag.String("query", "", "jq expression applied to the JSON form of each sprite")
	all    = flag.Bool("all", false, "include zero values and animations past animation_count")
	colors = flag.Bool("color", false, "colorize field labels")
	dir    = flag.String("dir", "", "summarize every sprite file of a directory")
)

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	opts := options{
		Format: *format,
		Query:  *query,
		All:    *all,
		Color:  *colors,
	}

	if err := opts.validate(); err != nil {
		glog.Exitf("invalid flags: %v", err)
	}

	if *dir != "" {
		if err := summarize(os.Stdout, *dir); err != nil {
			glog.Exitf("%v", err)
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: sprinfo [flags] file.spr...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		glog.V(1).Infof("reading %s", path)
		if err := report(os.Stdout, path, opts); err != nil {
			glog.Errorf("%s", describe(err))
			failed = true
		}
	}

	glog.Flush()
	if failed {
		os.Exit(1)
	}
}
