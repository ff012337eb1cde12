// Command l1mock runs a local stand-in for a Constellation L1 node,
// implementing the endpoints the SDK clients use. Intended for development
// and integration testing; it accepts any well-formed signed envelope
// without verifying signatures.
package main

import (
	"flag"
	"os"

	. "github.com/constellationnetwork/metagraph-go"
)

var log = Log()

func main() {
	var listen, dbPath, feeAddress string
	var fee uint64

	fs := flag.NewFlagSet("l1mock", flag.ExitOnError)
	fs.StringVar(&listen, "listen", ":9010", "host:port to listen on")
	fs.StringVar(&dbPath, "db", "", "sqlite database path (in-memory when empty)")
	fs.StringVar(&feeAddress, "fee-address", defaultFeeAddress, "fee destination reported by /data/estimate-fee")
	fs.Uint64Var(&fee, "fee", 0, "fee reported by /data/estimate-fee")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return
	}

	var db Database
	if dbPath != "" {
		sqldb, err := NewSqlLiteDatabase(dbPath)
		if err != nil {
			log.Fatal().Msgf("%+v", err)
		}
		defer func() {
			_ = sqldb.Close()
		}()
		db = sqldb
	} else {
		db = NewInMemoryDatabase()
	}

	server := NewL1MockServer(db, fee, feeAddress)
	if err := server.Start(listen); err != nil {
		log.Fatal().Msgf("%+v", err)
	}
}
