package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pawprint/labresolve/internal/ai"
	"github.com/pawprint/labresolve/internal/common"
	"github.com/pawprint/labresolve/internal/model"
	"github.com/pawprint/labresolve/internal/resolve"
	"github.com/pawprint/labresolve/internal/service"
)

func resolveCmd() *cobra.Command {
	var (
		userID   string
		fromFile string
		showAll  bool
		useAI    bool
		learn    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [item name]",
		Short: "Resolve a raw lab item name to a canonical analyte",
		Long: `Run the resolution cascade (exact, alias, fuzzy) for one raw item
name, or for every line of a file with --file. With --ai, names that fall
through the cascade are sent to the configured disambiguation service.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if fromFile == "" && len(args) == 0 {
				return fmt.Errorf("provide an item name or --file")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := initEngine(store)
			scope := scopeFor(userID)

			if fromFile != "" {
				return resolveFromFile(cmd, engine, store, scope, fromFile, useAI, learn)
			}

			rawName := args[0]
			if showAll {
				return printAlternatives(cmd, engine, scope, rawName)
			}

			result, err := engine.Resolve(ctx, rawName, scope)
			if err != nil {
				return err
			}

			if result.Method == model.MethodNone && useAI {
				result, err = disambiguate(cmd, engine, store, scope, rawName, learn)
				if err != nil {
					return err
				}
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "resolve against this user's merged catalog")
	cmd.Flags().StringVar(&fromFile, "file", "", "resolve every line of this file as a batch")
	cmd.Flags().BoolVar(&showAll, "all", false, "list every candidate above the threshold instead of resolving")
	cmd.Flags().BoolVar(&useAI, "ai", false, "send unresolved names to the AI disambiguation service")
	cmd.Flags().BoolVar(&learn, "learn", false, "persist accepted AI verdicts as aliases or new items")

	return cmd
}

func resolveFromFile(cmd *cobra.Command, engine *resolve.Engine, store service.CatalogStore, scope model.Scope, path string, useAI, learn bool) error {
	ctx := cmd.Context()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rawNames []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			rawNames = append(rawNames, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	if len(rawNames) == 0 {
		return fmt.Errorf("no item names in %s", path)
	}

	results, err := engine.ResolveBatch(ctx, rawNames, scope)
	if err != nil {
		return err
	}

	if useAI {
		bar := progressbar.Default(int64(len(results)), "disambiguating")
		for i := range results {
			if useAI && results[i].Method == model.MethodNone {
				verdictResult, vErr := disambiguate(cmd, engine, store, scope, results[i].RawName, learn)
				switch {
				case vErr == nil:
					results[i] = verdictResult
				case common.IsRetryable(vErr):
					fmt.Fprintf(os.Stderr, "disambiguation failed for %q: %v\n", results[i].RawName, vErr)
				default:
					// A hard failure (missing key, bad config) will hit every
					// remaining name too; stop calling out for this batch.
					fmt.Fprintf(os.Stderr, "disambiguation failed for %q, skipping the rest of the batch: %v\n", results[i].RawName, vErr)
					useAI = false
				}
			}
			_ = bar.Add(1)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintln(w, "RAW NAME\tMETHOD\tCANONICAL\tCONFIDENCE\tMATCHED")
	for _, r := range results {
		canonical := "-"
		if r.Item != nil {
			canonical = r.Item.Name
		} else if r.Draft != nil {
			canonical = r.Draft.Name + " (draft)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\n", r.RawName, r.Method, canonical, r.Confidence, r.MatchedText)
	}

	return nil
}

// disambiguate sends an unresolved name to the AI service and feeds the
// verdict back through the engine.
func disambiguate(cmd *cobra.Command, engine *resolve.Engine, store service.CatalogStore, scope model.Scope, rawName string, learn bool) (model.MatchResult, error) {
	ctx := cmd.Context()

	apiKey := viper.GetString("ai.api_key")
	if apiKey == "" {
		return model.NoMatch(rawName), fmt.Errorf("%w: ai.api_key", common.ErrMissingConfig)
	}

	client, err := ai.NewClient(ai.Config{
		APIKey: apiKey,
		Model:  viper.GetString("ai.model"),
	})
	if err != nil {
		return model.NoMatch(rawName), fmt.Errorf("AI disambiguation unavailable: %w", err)
	}

	items, err := store.ItemsForScope(ctx, model.GlobalScope)
	if err != nil {
		return model.NoMatch(rawName), fmt.Errorf("failed to load catalog: %w", err)
	}
	if !scope.IsGlobal() {
		overlay, err := store.ItemsForScope(ctx, scope)
		if err != nil {
			return model.NoMatch(rawName), fmt.Errorf("failed to load catalog: %w", err)
		}
		items = append(items, overlay...)
	}

	verdict, err := client.Disambiguate(ctx, rawName, items)
	if err != nil {
		return model.NoMatch(rawName), fmt.Errorf("%w: %w", common.ErrDisambiguationFailed, err)
	}

	result := engine.AcceptVerdict(rawName, *verdict)
	if learn && result.Method != model.MethodNone {
		if err := engine.Learn(ctx, result, scope); err != nil {
			return result, fmt.Errorf("failed to learn verdict: %w", err)
		}
	}
	return result, nil
}

func printAlternatives(cmd *cobra.Command, engine *resolve.Engine, scope model.Scope, rawName string) error {
	candidates, err := engine.Alternatives(cmd.Context(), rawName, scope, 0.5)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Printf("No candidates above threshold for %q\n", rawName)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintln(w, "CANDIDATE\tSIMILARITY")
	for _, c := range candidates {
		fmt.Fprintf(w, "%s\t%.3f\n", c.Text, c.Similarity)
	}
	return nil
}

func printResult(r model.MatchResult) {
	switch r.Method {
	case model.MethodNone:
		fmt.Printf("%q: no match\n", r.RawName)
	case model.MethodAINew:
		fmt.Printf("%q: suggested new item %s (%s), pending confirmation\n", r.RawName, r.Draft.Name, r.Reasoning)
	default:
		fmt.Printf("%q -> %s (%s)  method=%s confidence=%.0f", r.RawName, r.Item.Name, r.Item.DisplayName, r.Method, r.Confidence)
		if r.MatchedText != "" && r.MatchedText != r.Item.Name {
			fmt.Printf(" via %q", r.MatchedText)
		}
		if r.SourceHint != "" {
			fmt.Printf(" [%s]", r.SourceHint)
		}
		fmt.Println()
	}
}
