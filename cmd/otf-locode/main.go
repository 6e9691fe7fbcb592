package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	otflocode "github.com/nsip/otf-locode"
	"github.com/peterbourgon/ff/v3"
)

func main() {

	fs := flag.NewFlagSet("otf-locode", flag.ExitOnError)
	var (
		_            = fs.String("config", "", "config file (optional), json format.")
		serviceName  = fs.String("name", "", "name for this locode service instance")
		serviceID    = fs.String("id", "", "id for this locode service instance, leave blank to auto-generate a unique id")
		serviceHost  = fs.String("host", "localhost", "name/address of host for this service")
		servicePort  = fs.Int("port", 0, "port to run service on, if not specified will assign an available port automatically")
		foundational = fs.String("foundational", otflocode.DefaultFoundationalBank, "path or url of the Foundational LO bank workbook")
		preparatory  = fs.String("preparatory", otflocode.DefaultPreparatoryBank, "path or url of the Preparatory LO bank workbook")
		template     = fs.String("template", otflocode.DefaultTemplate, "path or url of the question template workbook")
		columnMap    = fs.String("columns", "", "json file overriding the template column mapping (optional)")
		outputDir    = fs.String("output", "", "folder for processed workbooks, defaults to a folder under the system temp dir")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.JSONParser),
		ff.WithEnvVarPrefix("OTF_LOCODE_SRVC"),
	); err != nil {
		fmt.Printf("\nCannot read otf-locode configuration:\n%s\n\n", err)
		return
	}

	opts := []otflocode.Option{
		otflocode.Name(*serviceName),
		otflocode.ID(*serviceID),
		otflocode.Host(*serviceHost),
		otflocode.Port(*servicePort),
		otflocode.FoundationalBank(*foundational),
		otflocode.PreparatoryBank(*preparatory),
		otflocode.Template(*template),
		otflocode.ColumnMap(*columnMap),
		otflocode.OutputDir(*outputDir),
	}

	srvc, err := otflocode.New(opts...)
	if err != nil {
		fmt.Printf("\nCannot create otf-locode service:\n%s\n\n", err)
		return
	}

	srvc.PrintConfig()

	// signal handler for shutdown
	closed := make(chan struct{})
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		fmt.Println("\notf-locode shutting down")
		srvc.Shutdown()
		fmt.Println("otf-locode closed")
		close(closed)
	}()

	srvc.Start()

	// block until shutdown by sig-handler
	<-closed

}
