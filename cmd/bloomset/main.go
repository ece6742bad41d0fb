// bloomset is a thin command line wrapper around the filter library: it
// builds a filter from newline-delimited values, saves and loads the
// binary filter state, and probes query values. All membership logic
// lives in the library; this command only does I/O.
package main

import (
	"bufio"
	"encoding"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	bloom "github.com/tnxbutno/b-f"
)

var (
	expected    uint64
	rate        float64
	partitioned bool
	verbose     bool
)

func newFilter() (bloom.Filter, error) {
	if partitioned {
		return bloom.NewPartitioned(expected, rate)
	}
	return bloom.New(expected, rate)
}

func insertFile(f bloom.Filter, path string) (uint64, error) {
	fd, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fd.Close()

	var n uint64
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		f.Insert(scanner.Bytes())
		n++
	}
	return n, scanner.Err()
}

// loadFilter detects the variant from the encoding magic.
func loadFilter(path string) (bloom.Filter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c bloom.Classical
	err = c.UnmarshalBinary(data)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, bloom.ErrBadMagic) {
		return nil, err
	}

	var p bloom.Partitioned
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &p, nil
}

func probe(f bloom.Filter, values []string) {
	for _, v := range values {
		if f.Lookup([]byte(v)) {
			fmt.Printf("%s\tmaybe\n", v)
		} else {
			fmt.Printf("%s\tno\n", v)
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "bloomset",
		Short: "Probabilistic set-membership filters",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Uint64Var(&expected, "expected", 1000, "expected number of inserted values")
	rootCmd.PersistentFlags().Float64Var(&rate, "rate", 0.01, "target false positive rate, in (0, 1)")
	rootCmd.PersistentFlags().BoolVar(&partitioned, "partitioned", false, "use the partitioned variant")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "build <input> <output>",
		Short: "Build a filter from a newline-delimited value file and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFilter()
			if err != nil {
				return err
			}
			n, err := insertFile(f, args[0])
			if err != nil {
				return err
			}

			data, err := f.(encoding.BinaryMarshaler).MarshalBinary()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0644); err != nil {
				return err
			}
			logrus.Infof("inserted %d values, wrote %d bytes to %s", n, len(data), args[1])
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "check <filter> <value>...",
		Short: "Probe query values against a saved filter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFilter(args[0])
			if err != nil {
				return err
			}
			probe(f, args[1:])
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "probe <input> <value>...",
		Short: "Build a filter in memory and probe query values",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := newFilter()
			if err != nil {
				return err
			}
			n, err := insertFile(f, args[0])
			if err != nil {
				return err
			}
			logrus.Debugf("inserted %d values from %s", n, args[0])
			probe(f, args[1:])
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
