// Command dag is a thin CLI over the l1client package, useful for poking
// at an L1 node (or the l1mock binary) during development.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	. "github.com/constellationnetwork/metagraph-go"
	"github.com/constellationnetwork/metagraph-go/l1client"
	"github.com/pkg/errors"
)

var log = Log()

var url string

func main() {
	if len(os.Args) < 2 {
		log.Fatal().Msgf("usage: dag (last-ref | pending | submit | health | estimate-fee | post-data) --url <url> ...")
	}

	var err error

	switch os.Args[1] {
	case "last-ref":
		var address string
		fs := flag.NewFlagSet("last-ref", flag.ExitOnError)
		fs.StringVar(&url, "url", "", "currency l1 url")
		fs.StringVar(&address, "address", "", "dag address")
		if err = fs.Parse(os.Args[2:]); err != nil {
			return
		}
		err = lastRef(address)
	case "pending":
		var hash string
		fs := flag.NewFlagSet("pending", flag.ExitOnError)
		fs.StringVar(&url, "url", "", "currency l1 url")
		fs.StringVar(&hash, "hash", "", "transaction hash")
		if err = fs.Parse(os.Args[2:]); err != nil {
			return
		}
		err = pending(hash)
	case "submit":
		var file string
		fs := flag.NewFlagSet("submit", flag.ExitOnError)
		fs.StringVar(&url, "url", "", "currency l1 url")
		fs.StringVar(&file, "file", "", "signed transaction json file")
		if err = fs.Parse(os.Args[2:]); err != nil {
			return
		}
		err = submit(file)
	case "health":
		var data bool
		fs := flag.NewFlagSet("health", flag.ExitOnError)
		fs.StringVar(&url, "url", "", "l1 url")
		fs.BoolVar(&data, "data", false, "treat url as a data l1 endpoint")
		if err = fs.Parse(os.Args[2:]); err != nil {
			return
		}
		err = health(data)
	case "estimate-fee":
		var file string
		fs := flag.NewFlagSet("estimate-fee", flag.ExitOnError)
		fs.StringVar(&url, "url", "", "data l1 url")
		fs.StringVar(&file, "file", "", "signed envelope json file")
		if err = fs.Parse(os.Args[2:]); err != nil {
			return
		}
		err = estimateFee(file)
	case "post-data":
		var file string
		fs := flag.NewFlagSet("post-data", flag.ExitOnError)
		fs.StringVar(&url, "url", "", "data l1 url")
		fs.StringVar(&file, "file", "", "signed envelope json file")
		if err = fs.Parse(os.Args[2:]); err != nil {
			return
		}
		err = postData(file)
	default:
		log.Fatal().Msgf("unknown command: %s", os.Args[1])
	}

	if err != nil {
		log.Fatal().Msgf("%+v", err)
	}
}

func currencyClient() (*l1client.CurrencyL1Client, error) {
	return l1client.NewCurrencyL1Client(NetworkConfig{L1URL: url})
}

func dataClient() (*l1client.DataL1Client, error) {
	return l1client.NewDataL1Client(NetworkConfig{DataL1URL: url})
}

func lastRef(address string) (err error) {
	if err = ValidateAddress(address); err != nil {
		return
	}

	client, err := currencyClient()
	if err != nil {
		return
	}

	ref, err := client.GetLastReference(address)
	if err != nil {
		return
	}

	return printJSON(ref)
}

func pending(hash string) (err error) {
	client, err := currencyClient()
	if err != nil {
		return
	}

	tx, err := client.GetPendingTransaction(hash)
	if err != nil {
		return
	}
	if tx == nil {
		fmt.Println("not found (finalized, evicted or never submitted)")
		return
	}

	return printJSON(tx)
}

func submit(file string) (err error) {
	tx := &CurrencyTransaction{}
	if err = readJSONFile(file, tx); err != nil {
		return
	}

	client, err := currencyClient()
	if err != nil {
		return
	}

	rsp, err := client.PostTransaction(tx)
	if err != nil {
		return
	}

	return printJSON(rsp)
}

func health(data bool) (err error) {
	healthy := false

	if data {
		client, err2 := dataClient()
		if err2 != nil {
			return err2
		}
		healthy = client.CheckHealth()
	} else {
		client, err2 := currencyClient()
		if err2 != nil {
			return err2
		}
		healthy = client.CheckHealth()
	}

	fmt.Println(healthy)
	return
}

func estimateFee(file string) (err error) {
	envelope := &Signed[json.RawMessage]{}
	if err = readJSONFile(file, envelope); err != nil {
		return
	}

	client, err := dataClient()
	if err != nil {
		return
	}

	rsp, err := client.EstimateFee(envelope)
	if err != nil {
		return
	}

	return printJSON(rsp)
}

func postData(file string) (err error) {
	envelope := &Signed[json.RawMessage]{}
	if err = readJSONFile(file, envelope); err != nil {
		return
	}

	client, err := dataClient()
	if err != nil {
		return
	}

	rsp, err := client.PostData(envelope)
	if err != nil {
		return
	}

	return printJSON(rsp)
}

func readJSONFile(file string, target any) (err error) {
	if file == "" {
		return errors.New("--file is required")
	}

	jsn, err := os.ReadFile(file)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrapf(json.Unmarshal(jsn, target), "failed to parse %s", file)
}

func printJSON(v any) (err error) {
	jsn, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	fmt.Println(string(jsn))
	return
}
