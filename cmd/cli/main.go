package main

import (
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/allocation/pkg/config"
	"github.com/limaJavier/allocation/pkg/input"
	"github.com/limaJavier/allocation/pkg/marking"
	"github.com/limaJavier/allocation/pkg/matching"
	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Flags shared by every subcommand
type globalOptions struct {
	configFile string
	seed       int64
	outFile    string
	verbose    bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Fatalf("allocation failed: %v", err)
	}
}

func newRootCommand() *cobra.Command {
	options := &globalOptions{}

	root := &cobra.Command{
		Use:           "allocate",
		Short:         "Allocate students to supervisors and markers to rooms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&options.configFile, "config", "", "Path to a YAML or JSON configuration file; defaults are used when empty")
	root.PersistentFlags().Int64Var(&options.seed, "seed", 0, "Random seed overriding the configuration; 0 seeds from the clock")
	root.PersistentFlags().StringVar(&options.outFile, "out", "", "Path to the CSV file where the result will be written; if empty, it'll be written into the Standard Output")
	root.PersistentFlags().BoolVarP(&options.verbose, "verbose", "v", false, "Log debug messages")

	root.AddCommand(newMatchCommand(options), newRoomsCommand(options))
	return root
}

func newMatchCommand(options *globalOptions) *cobra.Command {
	var studentsFile, supervisorsFile string

	command := &cobra.Command{
		Use:   "match",
		Short: "Match students to supervisors from their submitted choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd, options)
			cfg, err := loadConfig(cmd, options, logger)
			if err != nil {
				return err
			}

			students, err := readRecords(studentsFile, input.Students)
			if err != nil {
				return fmt.Errorf("cannot read students: %w", err)
			}
			supervisors, err := readRecords(supervisorsFile, input.Supervisors)
			if err != nil {
				return fmt.Errorf("cannot read supervisors: %w", err)
			}
			logger.Debugf("Read %v students and %v supervisors", len(students), len(supervisors))

			allocator := matching.NewAllocator(cfg.Source(), progress.NewLogrusSink(logger, "matching"), cfg.Matching.Runs)
			result := allocator.Allocate(students, supervisors)
			if !result.Success {
				return result.Err()
			}
			if !allocator.Verify(result.Students, result.Supervisors) {
				logger.Warn("Allocation does not respect supervisor capacities")
			}

			return writeOutput(cmd, options.outFile, func(writer io.Writer) error {
				return input.WriteStudentsCsv(writer, result.Students)
			})
		},
	}
	command.Flags().StringVar(&studentsFile, "students", "", "Path to the students file (CSV or JSON)")
	command.Flags().StringVar(&supervisorsFile, "supervisors", "", "Path to the supervisors file (CSV or JSON)")
	_ = command.MarkFlagRequired("students")
	_ = command.MarkFlagRequired("supervisors")
	return command
}

func newRoomsCommand(options *globalOptions) *cobra.Command {
	var markersFile, studentsFile string
	var roomCount int

	command := &cobra.Command{
		Use:   "rooms",
		Short: "Place markers and students into marking rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd, options)
			cfg, err := loadConfig(cmd, options, logger)
			if err != nil {
				return err
			}

			markers, err := readRecords(markersFile, input.Markers)
			if err != nil {
				return fmt.Errorf("cannot read markers: %w", err)
			}
			students, err := readRecords(studentsFile, input.MarkingStudents)
			if err != nil {
				return fmt.Errorf("cannot read students: %w", err)
			}
			logger.Debugf("Read %v markers and %v students for %v rooms", len(markers), len(students), roomCount)

			allocator, err := marking.NewRoomAllocator(cfg.Marking.Scores, cfg.Marking.Annealing, cfg.Source(), progress.NewLogrusSink(logger, "marking"), nil)
			if err != nil {
				return err
			}
			result := allocator.Allocate(markers, students, roomCount)
			if !result.Success {
				return result.Err()
			}
			for _, violation := range marking.Violations(result.Allocation) {
				logger.Warn(violation)
			}

			return writeOutput(cmd, options.outFile, func(writer io.Writer) error {
				return input.WriteRoomsCsv(writer, result.Allocation)
			})
		},
	}
	command.Flags().StringVar(&markersFile, "markers", "", "Path to the markers file (CSV or JSON)")
	command.Flags().StringVar(&studentsFile, "students", "", "Path to the students file (CSV or JSON)")
	command.Flags().IntVar(&roomCount, "rooms", 0, "Number of marking rooms")
	_ = command.MarkFlagRequired("markers")
	_ = command.MarkFlagRequired("students")
	_ = command.MarkFlagRequired("rooms")
	return command
}

func newLogger(cmd *cobra.Command, options *globalOptions) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if options.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// The --seed flag wins over the seed of the configuration file
func loadConfig(cmd *cobra.Command, options *globalOptions, logger logrus.FieldLogger) (config.Config, error) {
	cfg := config.Default()
	if options.configFile != "" {
		loaded, err := config.Load(options.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
		logger.WithField("file", options.configFile).Debug("Loaded configuration")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = options.seed
	}
	return cfg, nil
}

func readRecords[T any](file string, decode func([]input.Row) ([]T, error)) ([]T, error) {
	rows, err := input.ReadRows(file)
	if err != nil {
		return nil, err
	}
	return decode(rows)
}

func writeOutput(cmd *cobra.Command, outFile string, write func(io.Writer) error) error {
	if outFile == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer file.Close()
	return write(file)
}
