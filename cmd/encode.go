package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-qrplatba/app/batch"
	"github.com/vibast-solutions/ms-go-qrplatba/app/render"
	"github.com/vibast-solutions/ms-go-qrplatba/app/service"
	"github.com/vibast-solutions/ms-go-qrplatba/app/spd"
	"github.com/vibast-solutions/ms-go-qrplatba/app/types"
	"github.com/vibast-solutions/ms-go-qrplatba/config"
)

type encodeOptions struct {
	account        string
	iban           string
	amount         string
	currency       string
	variableSymbol string
	specificSymbol string
	constantSymbol string
	dueDate        string
	message        string
	recipientName  string
	pngPath        string
	size           int
	padding        int
	file           string
}

var encodeOpts encodeOptions

var ibanCmd = &cobra.Command{
	Use:   "iban <account>...",
	Short: "Convert Czech account numbers to IBAN",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, account := range args {
			iban, err := spd.AccountToIban(account)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), iban)
		}
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Print the QR Platba payload for a payment",
	Long:  "Encode a single payment from flags, or every payment in a YAML batch file, without touching the database.",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return configureLogging(config.LoadLog())
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runEncode(cmd, encodeOpts)
	},
}

func init() {
	rootCmd.AddCommand(ibanCmd)
	rootCmd.AddCommand(encodeCmd)

	flags := encodeCmd.Flags()
	flags.StringVar(&encodeOpts.account, "account", "", "Czech account number, [prefix-]number/bank")
	flags.StringVar(&encodeOpts.iban, "iban", "", "IBAN, instead of --account")
	flags.StringVar(&encodeOpts.amount, "amount", "", "Amount, e.g. 450.00")
	flags.StringVar(&encodeOpts.currency, "currency", "", "ISO 4217 currency code (default CZK)")
	flags.StringVar(&encodeOpts.variableSymbol, "vs", "", "Variable symbol")
	flags.StringVar(&encodeOpts.specificSymbol, "ss", "", "Specific symbol")
	flags.StringVar(&encodeOpts.constantSymbol, "ks", "", "Constant symbol")
	flags.StringVar(&encodeOpts.dueDate, "due", "", "Due date, YYYY-MM-DD")
	flags.StringVar(&encodeOpts.message, "message", "", "Message for the recipient")
	flags.StringVar(&encodeOpts.recipientName, "name", "", "Recipient name")
	flags.StringVar(&encodeOpts.pngPath, "png", "", "Write a QR code PNG to this path (a directory with --file)")
	flags.IntVar(&encodeOpts.size, "size", render.DefaultSize, "QR code size in pixels")
	flags.IntVar(&encodeOpts.padding, "padding", render.DefaultPadding, "QR code padding in pixels")
	flags.StringVar(&encodeOpts.file, "file", "", "YAML batch file with a payments list")
}

func runEncode(cmd *cobra.Command, opts encodeOptions) error {
	var requests []*types.EncodeDescriptorRequest
	if opts.file != "" {
		loaded, err := batch.Load(opts.file)
		if err != nil {
			return err
		}
		requests = loaded
	} else {
		req, err := opts.request()
		if err != nil {
			return err
		}
		requests = []*types.EncodeDescriptorRequest{req}
	}

	renderer := render.NewQRRenderer()
	renderOpts := render.DefaultOptions()
	renderOpts.Size = opts.size
	renderOpts.Padding = opts.padding

	if opts.pngPath != "" && opts.file != "" {
		if err := os.MkdirAll(opts.pngPath, 0o755); err != nil {
			return err
		}
	}

	for i, req := range requests {
		descriptor, err := service.BuildDescriptor(req)
		if err != nil {
			if len(requests) > 1 {
				return fmt.Errorf("payment %d: %w", i+1, err)
			}
			return err
		}
		payload := descriptor.String()
		fmt.Fprintln(cmd.OutOrStdout(), payload)

		if opts.pngPath == "" {
			continue
		}
		path := opts.pngPath
		if opts.file != "" {
			path = filepath.Join(opts.pngPath, fmt.Sprintf("payment-%03d.png", i+1))
		}
		data, err := renderer.PNG(payload, renderOpts)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logrus.WithField("path", path).Debug("QR code written")
	}

	return nil
}

func (o encodeOptions) request() (*types.EncodeDescriptorRequest, error) {
	req := &types.EncodeDescriptorRequest{
		Account:        o.account,
		IBAN:           o.iban,
		Currency:       o.currency,
		VariableSymbol: o.variableSymbol,
		SpecificSymbol: o.specificSymbol,
		ConstantSymbol: o.constantSymbol,
		DueDate:        o.dueDate,
		Message:        o.message,
		RecipientName:  o.recipientName,
	}
	if amount := strings.TrimSpace(o.amount); amount != "" {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", o.amount)
		}
		req.Amount = &value
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
