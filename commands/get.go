package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/cryptowatch/crypto-sheets/config"
	"github.com/cryptowatch/crypto-sheets/google"
	"github.com/cryptowatch/crypto-sheets/table"
)

var GetCmd = Get{
	command: command{
		workdir: DEFAULT_WORKDIR,
		env:     "",
		debug:   false,
	},

	sheet:     "",
	file:      "",
	coins:     false,
	published: false,
}

type Get struct {
	command
	sheet     string
	file      string
	coins     bool
	published bool
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a worksheet from the crypto spreadsheet and stores it as JSON"
}

func (cmd *Get) Usage() string {
	return "[--sheet <title>] [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options]\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a worksheet of the GOOGLE_SHEET_ID spreadsheet, or the PUBLIC_SHEET_URL export,")
	fmt.Println("  as a JSON list of row objects")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    crypto-sheets get --sheet "alerts_log" --file "alerts.json"`)
	fmt.Println(`    crypto-sheets --debug get --coins --workdir /etc/crypto-sheets`)
	fmt.Println(`    crypto-sheets get --published --env .env.production`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Worksheet title. Defaults to LIVE_DATA_SHEET")
	flagset.StringVar(&cmd.file, "file", cmd.file, "JSON file name. Defaults to stdout")
	flagset.BoolVar(&cmd.coins, "coins", cmd.coins, "Converts the rows to coin records")
	flagset.BoolVar(&cmd.published, "published", cmd.published, "Reads the published CSV export instead of using the Sheets API")

	return flagset
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	cfg, err := cmd.config(options)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var t *table.Table
	if cmd.published {
		t, err = cmd.fetchPublished(ctx, cfg)
	} else {
		t, err = cmd.fetch(ctx, cfg)
	}

	if err != nil {
		return err
	}

	var v any = t.Objects()
	if cmd.coins {
		if v, err = table.Coins(t); err != nil {
			return err
		}
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if err := cmd.write(cmd.file, append(b, '\n')); err != nil {
		return fmt.Errorf("error writing %v (%v)", cmd.file, err)
	}

	if cmd.file != "" {
		infof("Retrieved %v rows to file %s", len(t.Records), cmd.file)
	}

	return nil
}

func (cmd *Get) fetchPublished(ctx context.Context, cfg *config.Config) (*table.Table, error) {
	if cfg.PublicSheetURL == "" {
		return nil, fmt.Errorf("PUBLIC_SHEET_URL is not set")
	}

	if cmd.debug {
		debugf("published sheet %v", cfg.PublicSheetURL)
	}

	return google.FetchCSV(ctx, nil, cfg.PublicSheetURL)
}

func (cmd *Get) fetch(ctx context.Context, cfg *config.Config) (*table.Table, error) {
	if strings.TrimSpace(cfg.SheetID) == "" {
		return nil, fmt.Errorf("GOOGLE_SHEET_ID is not set")
	}

	id, err := google.SpreadsheetID(cfg.SheetID)
	if err != nil {
		return nil, err
	}

	title := cmd.sheet
	if strings.TrimSpace(title) == "" {
		title = cfg.LiveDataSheet
	}

	if cmd.debug {
		debugf("spreadsheet - ID:%s  sheet:%s", id, title)
	}

	service, err := cmd.connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	spreadsheet, err := google.GetSpreadsheet(ctx, service, id)
	if err != nil {
		return nil, fmt.Errorf("%v", google.Explain(err))
	}

	sheet := google.FindSheet(spreadsheet, title)
	if sheet == nil {
		return nil, fmt.Errorf("no '%v' sheet in spreadsheet '%v'", title, google.Title(spreadsheet))
	}

	rows, err := google.GetRows(ctx, service, id, sheet.Properties.Title)
	if err != nil {
		return nil, fmt.Errorf("%v", google.Explain(err))
	}

	return table.MakeTable(rows)
}
