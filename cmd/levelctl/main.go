package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mastercactapus/autolevel/config"
	"github.com/mastercactapus/autolevel/coord"
	"github.com/mastercactapus/autolevel/level"
)

func parsePoint(s string) (coord.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return coord.Point{}, fmt.Errorf("want x,y,z got %q", s)
	}
	var v [3]int64
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return coord.Point{}, err
		}
		v[i] = n
	}
	return coord.Point{X: v[0], Y: v[1], Z: v[2]}, nil
}

func main() {
	log.SetFlags(log.Lshortfile)

	cfgPath := flag.String("config", "", "Path to the YAML config file.")
	mode := flag.String("mode", "", "Correction mode, skew or tilt (overrides config).")
	maxDev := flag.Int64("max", 0, "Max allowed probe Z deviation in steps (overrides config).")
	zOff := flag.Int64("zoff", 0, "Probe tip to nozzle Z offset in steps (overrides config).")
	p1s := flag.String("p1", "", "First probe point as x,y,z in steps.")
	p2s := flag.String("p2", "", "Second probe point as x,y,z in steps.")
	p3s := flag.String("p3", "", "Third probe point as x,y,z in steps.")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *maxDev != 0 {
		cfg.MaxDeviation = *maxDev
	}
	if *zOff != 0 {
		cfg.ZOffset = *zOff
	}

	p1, err := parsePoint(*p1s)
	if err != nil {
		log.Fatal("-p1: ", err)
	}
	p2, err := parsePoint(*p2s)
	if err != nil {
		log.Fatal("-p2: ", err)
	}
	p3, err := parsePoint(*p3s)
	if err != nil {
		log.Fatal("-p3: ", err)
	}

	store, err := cfg.Store()
	if err != nil {
		log.Fatal(err)
	}

	switch cfg.Mode {
	case level.ModeSkew:
		s := level.NewSolver(store)
		ok := s.Init(cfg.MaxDeviation, cfg.ZOffset, p1, p2, p3)
		fmt.Println("status:", s.Status())
		if !ok {
			os.Exit(1)
		}
		fmt.Println("normal:", s.Normal())
		fmt.Println("d:", s.D())
		for _, p := range []coord.Point{p1, p2, p3} {
			_, dz := s.OffsetZ(p.X, p.Y)
			fmt.Printf("z offset at %s: %d\n", p, dz)
		}
	case level.ModeTilt:
		ti := level.NewTilt()
		ok := ti.Init(p1, p2, p3)
		fmt.Println("status:", ti.Status())
		if !ok {
			os.Exit(1)
		}
		for _, p := range []coord.Point{p1, p2, p3} {
			fmt.Printf("forward of %s: %s\n", p, ti.Forward(coord.Point{X: p.X, Y: p.Y}))
		}
	default:
		log.Fatalf("unknown mode %q", cfg.Mode)
	}
}
