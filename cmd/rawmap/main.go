// Command rawmap inspects and maintains the snapshot store that the
// import pipeline writes raw maps into.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mapcraft/rawmap"
	"github.com/mapcraft/rawmap/config"
	"github.com/mapcraft/rawmap/logging"
	"github.com/mapcraft/rawmap/mapname"
	"github.com/mapcraft/rawmap/storage"
)

var log = logging.NewLogger("")

func printCmds() {
	fmt.Fprintf(os.Stderr, "Usage: %s COMMAND [args]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Available commands:")
	fmt.Fprintln(os.Stderr, "\tls")
	fmt.Fprintln(os.Stderr, "\tinfo COUNTRY CITY MAP")
	fmt.Fprintln(os.Stderr, "\tblank COUNTRY CITY MAP")
	fmt.Fprintln(os.Stderr, "\trm COUNTRY CITY MAP")
	fmt.Fprintln(os.Stderr, "\tversion")
}

// openStore parses the shared flags, loads the config and opens the
// snapshot store. Remaining positional arguments are returned.
func openStore(name string, args []string) (*storage.Store, []string) {
	flags := flag.NewFlagSet(name, flag.ExitOnError)
	configFile := flags.String("config", "", "config file")
	dataDir := flags.String("datadir", "", "snapshot store directory (overrides config)")
	quiet := flags.Bool("quiet", false, "suppress info output")
	flags.Parse(args)

	conf, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *dataDir != "" {
		conf.DataDir = *dataDir
	}
	logging.SetQuiet(conf.Quiet || *quiet)

	store, err := storage.Open(conf.DataDir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return store, flags.Args()
}

func parseName(args []string) mapname.MapName {
	if len(args) != 3 {
		log.Fatalf("expected COUNTRY CITY MAP, got %d arguments", len(args))
	}
	return mapname.New(args[0], args[1], args[2])
}

func cmdLs(args []string) {
	store, _ := openStore("ls", args)
	defer store.Close()

	names, err := store.ListMaps()
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, name := range names {
		fmt.Println(name.Key())
	}
}

type mapInfo struct {
	Name               string `json:"name"`
	Roads              int    `json:"roads"`
	Intersections      int    `json:"intersections"`
	Buildings          int    `json:"buildings"`
	Areas              int    `json:"areas"`
	ParkingLots        int    `json:"parking_lots"`
	ParkingAisles      int    `json:"parking_aisles"`
	TransitRoutes      int    `json:"transit_routes"`
	TransitStops       int    `json:"transit_stops"`
	RoadsWithBusRoutes int    `json:"roads_with_bus_routes"`
}

func cmdInfo(args []string) {
	store, rest := openStore("info", args)
	defer store.Close()

	name := parseName(rest)
	m, err := store.GetRawMap(name)
	if err != nil {
		log.Fatalf("%v", err)
	}

	info := mapInfo{
		Name:               m.Name.Key(),
		Roads:              m.Streets.NumRoads(),
		Intersections:      m.Streets.NumIntersections(),
		Buildings:          len(m.Buildings),
		Areas:              len(m.Areas),
		ParkingLots:        len(m.ParkingLots),
		ParkingAisles:      len(m.ParkingAisles),
		TransitRoutes:      len(m.TransitRoutes),
		TransitStops:       len(m.TransitStops),
		RoadsWithBusRoutes: m.BusRoutesOnRoads.Len(),
	}
	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(string(out))
}

func cmdBlank(args []string) {
	store, rest := openStore("blank", args)
	defer store.Close()

	name := parseName(rest)
	if store.Exists(name) {
		log.Fatalf("snapshot %s already exists", name.Key())
	}
	if err := rawmap.Blank(name).Snapshot(store); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("created blank snapshot %s", name.Key())
}

func cmdRm(args []string) {
	store, rest := openStore("rm", args)
	defer store.Close()

	name := parseName(rest)
	if !store.Exists(name) {
		log.Fatalf("no snapshot %s", name.Key())
	}
	if err := store.Delete(name); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("deleted snapshot %s", name.Key())
}

func main() {
	if len(os.Args) <= 1 {
		printCmds()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ls":
		cmdLs(os.Args[2:])
	case "info":
		cmdInfo(os.Args[2:])
	case "blank":
		cmdBlank(os.Args[2:])
	case "rm":
		cmdRm(os.Args[2:])
	case "version":
		fmt.Println(rawmap.Version)
	default:
		printCmds()
		log.Fatalf("invalid command: '%s'", os.Args[1])
	}
}
