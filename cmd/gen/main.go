// Command gen emits a random transaction CSV for load and soak testing the
// engine and CLI.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

var (
	clients  int
	count    int
	workload string
	seed     int64
)

func init() {
	flag.IntVar(&clients, "clients", 100, "Number of distinct clients")
	flag.IntVar(&count, "count", 10000, "Number of transactions to generate")
	flag.StringVar(&workload, "workload", "uniform", "Workload type: uniform | hotspot")
	flag.Int64Var(&seed, "seed", 1, "RNG seed, for reproducible fixtures")
}

func main() {
	flag.Parse()
	if clients < 1 || clients > 65535 {
		log.Fatalf("clients must be in [1,65535], got %d", clients)
	}
	if workload != "uniform" && workload != "hotspot" {
		log.Fatalf("unknown workload %q", workload)
	}

	rng := rand.New(rand.NewSource(seed))
	w := csv.NewWriter(os.Stdout)

	if err := w.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		log.Fatal(err)
	}

	// Deposit ids accepted so far, per client, so dispute/resolve/chargeback
	// rows reference real transactions most of the time.
	depositsByClient := make(map[int][]uint32)
	nextTx := uint32(1)

	for i := 0; i < count; i++ {
		client := pickClient(rng)

		var row []string
		switch r := rng.Float64(); {
		case r < 0.55: // deposit
			amount := fmt.Sprintf("%d.%04d", rng.Intn(1000)+1, rng.Intn(10000))
			row = []string{"deposit", strconv.Itoa(client), strconv.FormatUint(uint64(nextTx), 10), amount}
			depositsByClient[client] = append(depositsByClient[client], nextTx)
			nextTx++
		case r < 0.85: // withdrawal
			amount := fmt.Sprintf("%d.%04d", rng.Intn(500)+1, rng.Intn(10000))
			row = []string{"withdrawal", strconv.Itoa(client), strconv.FormatUint(uint64(nextTx), 10), amount}
			nextTx++
		default: // dispute family, referencing a prior deposit when one exists
			deposits := depositsByClient[client]
			if len(deposits) == 0 {
				continue
			}
			ref := deposits[rng.Intn(len(deposits))]
			kind := []string{"dispute", "resolve", "chargeback"}[rng.Intn(3)]
			row = []string{kind, strconv.Itoa(client), strconv.FormatUint(uint64(ref), 10)}
		}

		if err := w.Write(row); err != nil {
			log.Fatal(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
}

// pickClient draws a client id; the hotspot workload concentrates 80% of
// traffic on 10% of the clients.
func pickClient(rng *rand.Rand) int {
	if workload == "hotspot" && rng.Float64() < 0.8 {
		hot := clients / 10
		if hot < 1 {
			hot = 1
		}
		return rng.Intn(hot) + 1
	}
	return rng.Intn(clients) + 1
}
