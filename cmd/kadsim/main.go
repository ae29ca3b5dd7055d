// Command kadsim runs a node lookup against a simulated in process
// overlay and prints the discovered contacts.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"golang.org/x/time/rate"

	"github.com/james-lawrence/kad"
	"github.com/james-lawrence/kad/int160"
	"github.com/james-lawrence/kad/memnet"
)

type cli struct {
	Nodes       int           `arg:"--nodes" default:"256" help:"number of simulated nodes"`
	Failures    float64       `arg:"--failures" default:"0" help:"fraction of nodes dropped before the search [0,1)"`
	Target      string        `arg:"--target" help:"hex encoded target identifier, random when empty"`
	Results     int           `arg:"--results,-n" default:"8" help:"closest contacts to collect"`
	Parallelism int           `arg:"--parallelism,-p" default:"3" help:"concurrent workers"`
	Latency     time.Duration `arg:"--latency" default:"0s" help:"simulated per call latency"`
	Rate        float64       `arg:"--rate" default:"0" help:"outbound calls per second, 0 disables the limiter"`
	Timeout     time.Duration `arg:"--timeout" default:"30s" help:"bound on the whole search"`
	Verbose     bool          `arg:"--verbose,-v" help:"per step tracing"`
}

func main() {
	var (
		args cli
	)

	arg.MustParse(&args)

	target := int160.Random()
	if args.Target != "" {
		var err error
		if target, err = int160.FromHexEncodedString(args.Target); err != nil {
			log.Fatalln("invalid target", err)
		}
	}

	overlay := memnet.NewOverlay(memnet.OptionLatency(args.Latency))

	nodes := make([]*memnet.Node, 0, args.Nodes)
	for i := 0; i < args.Nodes; i++ {
		nodes = append(nodes, overlay.Join(int160.Random()))
	}

	// ring plus random fingers so every lookup has a path to walk.
	for i, n := range nodes {
		for j := 1; j <= 3; j++ {
			n.Learn(nodes[(i+j)%len(nodes)].Contact())
		}
		for j := 0; j < 5; j++ {
			n.Learn(nodes[rand.IntN(len(nodes))].Contact())
		}
	}

	for _, n := range nodes[1:] {
		if rand.Float64() < args.Failures {
			overlay.Drop(n.Addr())
		}
	}

	network := nodes[0].Network()
	if args.Rate > 0 {
		network = kad.NetworkLimiter(network, rate.NewLimiter(rate.Limit(args.Rate), 1))
	}

	options := []kad.Option{
		kad.OptionResults(args.Results),
		kad.OptionParallelism(args.Parallelism),
		kad.OptionLogger(log.Default()),
	}
	if args.Verbose {
		options = append(options, kad.OptionDebug(log.Default()))
	}

	ctx, done := context.WithTimeout(context.Background(), args.Timeout)
	defer done()

	search := kad.NewSearch(network, target, options...)
	if err := search.Start(ctx); err != nil {
		log.Fatalln("unable to start search", err)
	}

	if err := search.Wait(ctx); err != nil {
		log.Fatalln("search did not complete", err)
	}

	fmt.Printf("target %s status(%s) %s\n", target, search.Status(), search.Stats())
	for i, c := range search.Results() {
		fmt.Printf("%2d %s %s distance(%s)\n", i, c.ID, c.Addr, target.Distance(c.ID))
	}

	if len(search.Results()) == 0 {
		os.Exit(1)
	}
}
