// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Listbench summarizes the results of the linked-list benchmarks.
//
// Usage:
//
//	listbench [flags] [method=path...]
//
// Listbench reads the result logs written by the serial, mutex and
// read-write lock implementations, keeps the latest measurement of
// each (thread count, implementation) pair of every workload case,
// and reports them as a text table and as one bar chart per case.
//
// By default the logs are read from results/serial_results.txt,
// results/mutex_results.txt and results/rw_lock_results.txt. Logs
// given as arguments replace all three; each is labeled with the text
// before "=" (or its path, if there is no "="). A log that does not
// exist is reported and skipped.
//
// The flags are:
//
//	-serial, -mutex, -rwlock path
//	    Read that implementation's log from path.
//	-case name=mMember,mInsert,mDelete
//	    Use this workload case. May be repeated; replaces the
//	    default cases.
//	-png, -svg, -pdf dir
//	    Write charts in that format into dir. PNG charts are
//	    written to the current directory unless -png="" is given.
//	-csv
//	    Write the table as CSV instead of text.
//	-html file
//	    Write the table as an HTML page to file.
//	-json file
//	    Write the datasets as JSON to file.
//	-dedup file
//	    Write the records that were kept to file, in log format.
//	-db driver:dsn
//	    Save the datasets as a new run in a SQL database. The
//	    drivers are sqlite3 and mysql.
//	-load id
//	    Report run id from the -db database instead of reading logs.
//	-list
//	    Print the IDs of the runs in the -db database and exit.
//	-q
//	    Do not print the table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/cs4532/listbench/benchagg"
	"github.com/cs4532/listbench/benchcase"
	"github.com/cs4532/listbench/benchchart"
	"github.com/cs4532/listbench/benchlog"
	"github.com/cs4532/listbench/benchtab"
	"github.com/cs4532/listbench/storage/db"
)

func main() {
	log.SetPrefix("listbench: ")
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// caseFlag collects repeated -case flags.
type caseFlag []benchcase.Case

func (f *caseFlag) String() string {
	var names []string
	for _, c := range *f {
		names = append(names, c.Name)
	}
	return strings.Join(names, ",")
}

func (f *caseFlag) Set(s string) error {
	c, err := benchcase.ParseCase(s)
	if err != nil {
		return err
	}
	*f = append(*f, c)
	return nil
}

// run is the command without its process-wide effects. It returns
// the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	l := log.New(stderr, "listbench: ", 0)

	cfg := benchagg.DefaultConfig()
	var cases caseFlag
	var (
		pngDir   = "."
		svgDir   string
		pdfDir   string
		csvOut   bool
		htmlOut  string
		jsonOut  string
		dedupOut string
		list     bool
		dbSpec   string
		loadID   string
		quiet    bool
		baseline string
	)

	fs := flag.NewFlagSet("listbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: listbench [flags] [method=path...]\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.Serial, "serial", cfg.Serial, "read the serial implementation's log from `path`")
	fs.StringVar(&cfg.Mutex, "mutex", cfg.Mutex, "read the mutex implementation's log from `path`")
	fs.StringVar(&cfg.RWLock, "rwlock", cfg.RWLock, "read the read-write lock implementation's log from `path`")
	fs.Var(&cases, "case", "use workload case `name=mMember,mInsert,mDelete` (repeatable)")
	fs.StringVar(&pngDir, "png", pngDir, "write png charts into `dir`")
	fs.StringVar(&svgDir, "svg", svgDir, "write svg charts into `dir`")
	fs.StringVar(&pdfDir, "pdf", pdfDir, "write pdf charts into `dir`")
	fs.BoolVar(&csvOut, "csv", csvOut, "print the table as CSV")
	fs.StringVar(&htmlOut, "html", htmlOut, "write the table as HTML to `file`")
	fs.StringVar(&jsonOut, "json", jsonOut, "write the datasets as JSON to `file`")
	fs.StringVar(&dbSpec, "db", dbSpec, "save the datasets to the SQL database `driver:dsn`")
	fs.StringVar(&dedupOut, "dedup", dedupOut, "write the kept records in log format to `file`")
	fs.BoolVar(&list, "list", list, "print the runs in the -db database and exit")
	fs.StringVar(&loadID, "load", loadID, "report run `id` from the -db database")
	fs.StringVar(&baseline, "baseline", benchagg.Methods[0], "compute speedups against `method`")
	fs.BoolVar(&quiet, "q", quiet, "do not print the table")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if (loadID != "" || list) && dbSpec == "" {
		fmt.Fprintf(stderr, "-load and -list require -db\n")
		fs.Usage()
		return 2
	}

	srcs := cfg.Sources()
	if fs.NArg() > 0 {
		srcs = nil
		for _, arg := range fs.Args() {
			src, err := benchlog.ParseSource(arg)
			if err != nil {
				fmt.Fprintf(stderr, "%v\n", err)
				fs.Usage()
				return 2
			}
			srcs = append(srcs, src)
		}
	}

	var store *db.DB
	if dbSpec != "" {
		i := strings.Index(dbSpec, ":")
		if i <= 0 {
			fmt.Fprintf(stderr, "malformed -db %q, want driver:dsn\n", dbSpec)
			return 2
		}
		var err error
		store, err = db.OpenSQL(dbSpec[:i], dbSpec[i+1:])
		if err != nil {
			l.Printf("opening database: %v", err)
			return 1
		}
		defer store.Close()
	}

	ctx := context.Background()
	if list {
		ids, err := store.ListRuns(ctx)
		if err != nil {
			l.Printf("listing runs: %v", err)
			return 1
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
		return 0
	}

	var res *benchagg.Result
	if loadID != "" {
		var err error
		res, err = store.LoadResult(ctx, loadID)
		if err != nil {
			l.Printf("%v", err)
			return 1
		}
	} else {
		opts := benchagg.Options{
			Cases: cases,
			Warn: func(err error) {
				l.Printf("%v", err)
			},
		}
		var err error
		res, err = benchagg.AggregateSources(srcs, opts)
		if err != nil {
			l.Printf("%v", err)
			return 1
		}
		if res.Empty() && len(res.Missing()) == len(srcs) && len(srcs) > 0 {
			l.Printf("no input could be read")
			return 1
		}
	}

	tables := benchtab.Build(res, baseline)
	if !quiet {
		var err error
		if csvOut {
			err = benchtab.FormatCSV(stdout, tables)
		} else {
			err = benchtab.FormatText(stdout, tables)
		}
		if err != nil {
			l.Printf("%v", err)
			return 1
		}
	}

	if htmlOut != "" {
		if err := writeFile(htmlOut, func(w io.Writer) error {
			return benchtab.FormatHTML(w, tables)
		}); err != nil {
			l.Printf("%v", err)
			return 1
		}
	}

	if jsonOut != "" {
		if err := writeFile(jsonOut, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "\t")
			return enc.Encode(jsonResult(res))
		}); err != nil {
			l.Printf("%v", err)
			return 1
		}
	}

	if dedupOut != "" {
		if err := writeFile(dedupOut, func(w io.Writer) error {
			return writeRecords(w, res)
		}); err != nil {
			l.Printf("%v", err)
			return 1
		}
	}

	if pngDir != "" || svgDir != "" || pdfDir != "" {
		files, err := benchchart.Chart(res, benchchart.Options{PNGDir: pngDir, SVGDir: svgDir, PDFDir: pdfDir})
		if err != nil {
			l.Printf("writing charts: %v", err)
			return 1
		}
		for _, f := range files {
			l.Printf("wrote %s", f)
		}
	}

	if store != nil && loadID == "" {
		id, err := store.SaveResult(ctx, res)
		if err != nil {
			l.Printf("saving run: %v", err)
			return 1
		}
		n, err := store.CountRuns()
		if err != nil {
			l.Printf("counting runs: %v", err)
			return 1
		}
		l.Printf("saved run %s (%d runs stored)", id, n)
	}
	return 0
}

// writeFile creates name and writes it with write.
func writeFile(name string, write func(w io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return f.Close()
}

// writeRecords writes the datasets of res in log format, case by case.
func writeRecords(w io.Writer, res *benchagg.Result) error {
	bw := benchlog.NewWriter(w)
	for _, c := range res.Cases() {
		for _, rec := range res.Dataset(c.Name) {
			if err := bw.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

type jsonCase struct {
	Name    string             `json:"name"`
	MMember float64            `json:"mMember"`
	MInsert float64            `json:"mInsert"`
	MDelete float64            `json:"mDelete"`
	Records []*benchlog.Record `json:"records"`
}

func jsonResult(res *benchagg.Result) []jsonCase {
	out := []jsonCase{}
	for _, c := range res.Cases() {
		recs := res.Dataset(c.Name)
		if recs == nil {
			recs = []*benchlog.Record{}
		}
		out = append(out, jsonCase{c.Name, c.MMember, c.MInsert, c.MDelete, recs})
	}
	return out
}
