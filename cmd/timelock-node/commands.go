package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"timelock-node/api"
	"timelock-node/internal/config"
	"timelock-node/internal/dto"
	"timelock-node/internal/logger"
	"timelock-node/internal/message"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "timelock-node",
		Short:         "Decode time-locked secret-sharing messages read from the ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to JSON config file")

	loadConfig := func() (*config.Config, error) {
		cfg := config.Default()
		if configPath != "" {
			var err error
			if cfg, err = config.LoadConfig(configPath); err != nil {
				return nil, err
			}
		}
		if err := logger.InitLogger(cfg.Logger); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	root.AddCommand(newServeCmd(loadConfig), newDecodeCmd(loadConfig))
	return root
}

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the decode API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			router := api.SetupRouter(cfg)
			logger.Log.Infof("Listening on %s", cfg.ServerPort)
			return router.Run(cfg.ServerPort)
		},
	}
}

func newDecodeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode one JSON message tuple and print the record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			// keep stdout clean for the JSON record
			logger.Log.SetOutput(cmd.ErrOrStderr())

			raw, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return decodeTuple(raw, cmd.OutOrStdout(), cfg.Decoder.Describe())
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "tuple file (default stdin)")
	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "" {
		raw, err := io.ReadAll(stdin)
		return raw, errors.Wrap(err, "read stdin")
	}
	raw, err := os.ReadFile(file)
	return raw, errors.Wrapf(err, "read %s", file)
}

func decodeTuple(raw []byte, out io.Writer, describe bool) error {
	data, err := dto.ParseDataArray(raw)
	if err != nil {
		return err
	}
	m, err := message.Decode(data)
	if err != nil {
		return errors.WithMessage(err, "message cannot be represented")
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewMessageResponse(m, describe))
}
