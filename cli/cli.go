package cli

import (
	"fmt"
	"os"
	"strings"

	"dbfconv/dbf"
	"dbfconv/ui"
	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
)

type (
	Args struct {
		Info        *InfoCmd        `arg:"subcommand:info"`
		Convert     *ConvertCmd     `arg:"subcommand:convert"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive"`
	}
	InfoCmd struct {
		From     string `arg:"positional,required" help:"path or URL of the .dbf file" placeholder:"table.dbf"`
		Encoding string `help:"codepage for non-UTF-8 text" placeholder:"GBK"`
	}
	ConvertCmd struct {
		From        string `arg:"required" help:"path or URL of the source .dbf" placeholder:"table.dbf"`
		To          string `arg:"required" help:"path to the destination file" placeholder:"table.json"`
		Format      string `help:"output format: json or csv" default:"json"`
		Force       bool   `help:"overwrite the destination file"`
		Encoding    string `help:"codepage for non-UTF-8 text" placeholder:"GBK"`
		SkipDeleted bool   `arg:"--skip-deleted" help:"drop rows flagged deleted"`
	}
	InteractiveCmd struct {
		From string `arg:"positional,required" help:"path of the .dbf file" placeholder:"table.dbf"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"The attribute half of every shapefile, set free.\n",
			"A CLI utility to inspect dBASE (.dbf) attribute tables and convert",
			"them to JSON or CSV in the command line.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func StartInfo(from string, encoding string) {
	options := dbf.DefaultOptions()
	options.Encoding = encoding
	reader, err := dbf.Open(from, options)
	if err != nil {
		println("Error happened opening: " + from)
		println(err.Error())
		return
	}
	defer reader.Close()

	header := reader.Header()
	fmt.Printf("Table:         %s\n", reader.DisplayName())
	fmt.Printf("File code:     %d\n", header.FileCode)
	fmt.Printf("Last update:   %s\n", header.LastUpdate().Format("2006-01-02"))
	fmt.Printf("Records:       %d\n", header.NumberOfRecords)
	fmt.Printf("Record length: %d bytes\n", header.RecordLength)
	fmt.Printf("Fields:        %d\n", reader.NumberOfFields())
	fmt.Println()
	fmt.Printf("%-11s %-4s %6s %8s\n", "NAME", "TYPE", "LENGTH", "DECIMALS")
	for _, field := range reader.Fields() {
		fmt.Printf("%-11s %-4s %6d %8d\n", field.Name, field.Type, field.Length, field.DecimalCount)
	}
}

func StartConverting(cmd ConvertCmd) {
	if CheckExistence(cmd.To) && !cmd.Force {
		println("Destination file existed. Please type the command again with --force to allow overwriting!")
		return
	}
	if cmd.Format != "json" && cmd.Format != "csv" {
		println(`Unknown format "` + cmd.Format + `". Please use "json" or "csv"!`)
		return
	}

	options := dbf.DefaultOptions()
	options.Encoding = cmd.Encoding
	options.SkipDeleted = cmd.SkipDeleted
	reader, err := dbf.Open(cmd.From, options)
	if err != nil {
		println("Error happened opening: " + cmd.From)
		println(err.Error())
		return
	}
	defer reader.Close()

	records, err := reader.ReadAll()
	if err != nil {
		println("Error happened reading records from: " + cmd.From)
		println(err.Error())
		return
	}
	faults := 0
	for _, record := range records {
		faults += len(record.Faults)
	}
	if faults > 0 {
		fmt.Printf("Warning: %d field value(s) did not parse and became null\n", faults)
	}

	resultBytes := []byte(nil)
	if cmd.Format == "json" {
		resultBytes, err = dbf.ToJSON(records)
	} else {
		resultBytes, err = dbf.ToCSV(reader.Fields(), records)
	}
	if err != nil {
		println("Error happened converting records")
		println(err.Error())
		return
	}
	if err := os.WriteFile(cmd.To, resultBytes, 0644); err != nil {
		println("Error happened writing to file at: " + cmd.To)
		return
	}
	println("Done converting. Please check your result file at: " + cmd.To)
}

func StartInteractive(from string) {
	if err := ui.Start(from); err != nil {
		println("Error happened browsing: " + from)
		println(err.Error())
	}
}

func Start() {
	args := Args{}
	parser := arg.MustParse(&args)

	switch {
	case args.Info != nil:
		StartInfo(args.Info.From, args.Info.Encoding)
	case args.Convert != nil:
		StartConverting(*args.Convert)
	case args.Interactive != nil:
		StartInteractive(args.Interactive.From)
	default:
		parser.WriteHelp(os.Stdout)
	}
}
