package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/netkit-go/netkit/ipaddr"
	"github.com/netkit-go/netkit/oui"
)

func ouiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oui",
		Short: "Ingest and query the IEEE OUI registry",
	}

	cmd.AddCommand(ouiIngestCmd())
	cmd.AddCommand(ouiLookupCmd())

	return cmd
}

func ouiIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Parse one or more IEEE OUI CSV/TXT files and upsert them into the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := oui.Open(cfg.OUI.StorePath)
			if err != nil {
				return fmt.Errorf("open store %s: %w", cfg.OUI.StorePath, err)
			}

			var totalInserted, totalUpdated int
			for _, path := range args {
				inserted, updated, err := ingestOne(store, path)
				if err != nil {
					return err
				}
				totalInserted += inserted
				totalUpdated += updated
			}

			logger.Info("oui ingest complete",
				slog.Int("inserted", totalInserted),
				slog.Int("updated", totalUpdated),
				slog.Int("store_size", store.Len()),
			)
			fmt.Printf("inserted=%d updated=%d store_size=%d\n", totalInserted, totalUpdated, store.Len())

			return nil
		},
	}
}

func ingestOne(store *oui.Store, path string) (inserted, updated int, err error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []oui.Record
	var skipped int
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, skipped, err = oui.ParseCSV(f)
	} else {
		records, skipped, err = oui.ParseTXT(f)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("parse %s: %w", path, err)
	}

	inserted, updated, err = store.BatchUpsert(records)
	if err != nil {
		return 0, 0, fmt.Errorf("upsert %s: %w", path, err)
	}

	collector.ObserveIngest(path, time.Since(start).Seconds(), len(records), skipped)

	return inserted, updated, nil
}

func ouiLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <mac>",
		Short: "Look up the registry organization(s) covering a MAC address",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			start := time.Now()

			store, err := oui.Open(cfg.OUI.StorePath)
			if err != nil {
				return fmt.Errorf("open store %s: %w", cfg.OUI.StorePath, err)
			}

			mac, err := ipaddr.ParseMacAddr(args[0])
			if err != nil {
				return fmt.Errorf("parse MAC %q: %w", args[0], err)
			}

			hits := store.Lookup(mac)
			collector.ObserveLookup(time.Since(start).Seconds())

			if len(hits) == 0 {
				fmt.Printf("%s: no match\n", mac)
				return nil
			}
			for _, rec := range hits {
				fmt.Printf("%s: %s (%s) %s\n", mac, rec.Organization, rec.Type, rec.OUIID)
			}
			return nil
		},
	}
}
