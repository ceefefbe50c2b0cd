// Command tstdb-dump opens a tstdb database file and prints its
// diagnostic node listing to stdout, the way a host binding's
// interactive pager would before doing anything fancier with it.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tstdb/tst"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <database-file>\n", os.Args[0])
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "", 0)

	db, err := tst.OpenFile(os.Args[1])
	if err != nil {
		if errors.Is(err, tst.ErrCorrupt) || errors.Is(err, tst.ErrNotADatabase) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Fatal(err)
	}
	defer db.Close()

	db.Dump(func(line string) { logger.Println(line) })
}
