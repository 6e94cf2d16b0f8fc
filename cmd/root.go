package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "qrplatba",
	Short: "QR Platba descriptor microservice",
	Long:  "A microservice that converts Czech account numbers to IBAN and encodes QR Platba (SPD) payment descriptors.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
