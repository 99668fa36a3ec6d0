package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/supergoodsystems/supergood-sanitizer/internal/domainutils"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/presets"
)

// events can carry whole bodies
const maxLineSize = 16 * 1024 * 1024

type explanation struct {
	ID        string `json:"id,omitempty"`
	Method    string `json:"method"`
	URL       string `json:"url"`
	Domain    string `json:"domain,omitempty"`
	Subdomain string `json:"subdomain,omitempty"`
	Status    int    `json:"status"`
	Kept      bool   `json:"kept"`
	Rule      string `json:"rule"`
}

func NewClassifyCommand(newLogger func(*cobra.Command) (zerolog.Logger, error)) *cobra.Command {
	var (
		preset     string
		configFile string
		origin     string
		explain    bool
	)

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify newline delimited JSON events",
		Long: `Reads one JSON encoded request event per line from file (or stdin) and
writes the lines of the events that would be kept to stdout, unchanged. With --explain every event
is written as a short record naming the rule that decided it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(cmd)
			if err != nil {
				return err
			}

			c, err := selectClassifier(preset, configFile, origin)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("sanitizer: opening events: %w", err)
				}
				defer f.Close()
				in = f
			}

			return classifyStream(in, cmd.OutOrStdout(), c, explain, log)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", os.Getenv("SANITIZER_PRESET"), "Preset to classify with (strict, balanced, verbose, debug)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML classifier config file")
	cmd.Flags().StringVar(&origin, "origin", os.Getenv("SANITIZER_ORIGIN"), "Hostname of the recording application, kept by the own domain rule")
	cmd.Flags().BoolVar(&explain, "explain", false, "Print the deciding rule for every event instead of the kept events")
	cmd.MarkFlagsMutuallyExclusive("preset", "config")

	return cmd
}

// selectClassifier builds the classifier for the flags. origin does not
// override one set in a config file.
func selectClassifier(preset, configFile, origin string) (classifier.Classifier, error) {
	if configFile != "" {
		o, err := classifier.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		if o.Origin == "" {
			o.Origin = origin
		}
		return classifier.New(o), nil
	}

	var origins []string
	if origin != "" {
		origins = append(origins, origin)
	}
	if preset != "" {
		return presets.ByName(preset, origins...)
	}
	return presets.Balanced(origins...), nil
}

func writeLine(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func classifyStream(in io.Reader, out io.Writer, c classifier.Classifier, explain bool, log zerolog.Logger) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	enc := json.NewEncoder(out)

	var line, kept, dropped, skipped int
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}

		var ev event.RequestEvent
		if err := json.Unmarshal(b, &ev); err != nil {
			skipped++
			log.Warn().Err(err).Int("line", line).Msg("skipping unreadable event")
			continue
		}

		v := c.Classify(&ev)
		if v.Kept() {
			kept++
		} else {
			dropped++
		}

		var err error
		switch {
		case explain:
			err = enc.Encode(explanation{
				ID:        ev.ID,
				Method:    ev.Method,
				URL:       ev.URL,
				Domain:    domainutils.Domain(ev.URL),
				Subdomain: domainutils.Subdomain(ev.URL),
				Status:    ev.Status,
				Kept:      v.Kept(),
				Rule:      v.Rule().String(),
			})
		case v.Kept():
			// forward the line as read, not a re-encoding of it
			err = writeLine(out, b)
		}
		if err != nil {
			return fmt.Errorf("sanitizer: writing output: %w", err)
		}

		log.Debug().Int("line", line).Str("url", ev.URL).Stringer("verdict", v).Msg("classified event")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("sanitizer: reading events: %w", err)
	}

	log.Info().Int("kept", kept).Int("dropped", dropped).Int("skipped", skipped).Msg("classification finished")
	return nil
}
