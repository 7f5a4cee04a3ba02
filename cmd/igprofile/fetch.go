package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"igprofile/pkg/auth"
	"igprofile/pkg/config"
	"igprofile/pkg/instagram"
	"igprofile/pkg/metadata"
	"igprofile/pkg/scraper"
)

var (
	// Fetch command flags
	imagesOnly   bool
	jsonOutput   bool
	postCount    int
	accountName  string
	strict       bool
	savePath     string
	fetchTimeout time.Duration
	cookieFlag   string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <username>",
	Short: "Fetch a profile and the image URLs of its recent posts",
	Long: `Fetch the public metadata of an Instagram profile and one image URL per
image of its most recent posts.

Failures are logged and result in an empty result. Use --strict to exit
with a non-zero status instead.`,
	Example: `  # Profile card and image list
  igprofile fetch natgeo

  # Only the image URLs, as JSON
  igprofile fetch natgeo --images-only --json

  # Use a stored account and fail loudly
  igprofile fetch natgeo --account work --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&imagesOnly, "images-only", false, "skip the profile and print image URLs only")
	fetchCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	fetchCmd.Flags().IntVarP(&postCount, "count", "n", config.DefaultPostCount, "number of recent posts to read")
	fetchCmd.Flags().StringVarP(&accountName, "account", "a", "", "use a stored account's cookie")
	fetchCmd.Flags().BoolVar(&strict, "strict", false, "exit with status 1 when the fetch fails")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 0, "bound each HTTP request (e.g. 15s); 0 means no limit")
	fetchCmd.Flags().StringVar(&cookieFlag, "cookie", "", "session cookie for this run (prefer INSTAGRAM_COOKIE or 'auth set')")
	fetchCmd.Flags().StringVarP(&savePath, "save", "o", "", "write a snapshot to this .json or .yaml file")
}

func runFetch(cmd *cobra.Command, args []string) error {
	username := instagram.SanitizeUsername(args[0])

	source, err := cookieSource(cfg, accountName)
	if err != nil {
		return err
	}

	s := scraper.New(cfg,
		scraper.WithCookieSource(source),
		scraper.WithLogger(log),
	)

	ctx := cmd.Context()
	var (
		result   scraper.Result
		fetchErr error
	)
	switch {
	case strict || savePath != "":
		result, fetchErr = s.Fetch(ctx, username)
		if fetchErr != nil && strict {
			return fmt.Errorf("fetch failed: %w", fetchErr)
		}
		if imagesOnly {
			result.Profile = nil
		}
	case imagesOnly:
		result = scraper.Result{Images: s.FetchImages(ctx, username)}
	default:
		result = s.FetchProfileAndImages(ctx, username)
	}

	if savePath != "" {
		if fetchErr != nil {
			// An empty result would wipe the previous snapshot
			log.WithError(fetchErr).WithField("path", savePath).Warn("Snapshot not updated")
			if !jsonOutput {
				printer.Warning("Snapshot not updated", fetchErr)
			}
		} else if err := saveSnapshot(username, result); err != nil {
			return err
		}
	}

	if jsonOutput {
		return writeJSON(cmd, result, imagesOnly)
	}

	if !imagesOnly {
		if result.Profile == nil {
			printer.Warning("Profile unavailable", "see the log for details")
		} else {
			printer.Profile(result.Profile, cfg.Instagram.SiteURL)
		}
	}
	printer.Images(result.Images)
	return nil
}

// saveSnapshot writes the result to savePath, reporting images not present in the previous snapshot
func saveSnapshot(username string, result scraper.Result) error {
	snap := metadata.NewSnapshot(username, result.Profile, result.Images)

	if previous, err := metadata.Load(savePath); err == nil {
		fresh := previous.NewImages(result.Images)
		log.WithFields(map[string]interface{}{
			"path":       savePath,
			"new_images": len(fresh),
			"since":      previous.FetchedAt,
		}).Info("Compared with previous snapshot")
	}

	if err := snap.Save(savePath); err != nil {
		return err
	}
	log.WithField("path", savePath).Info("Snapshot saved")
	return nil
}

func writeJSON(cmd *cobra.Command, result scraper.Result, imagesOnly bool) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if imagesOnly {
		return enc.Encode(result.Images)
	}
	return enc.Encode(result)
}

// cookieSource picks the cookie in order: --account, configured cookie, INSTAGRAM_COOKIE, stored default account.
// The credential manager is only built when a stored account is actually read.
func cookieSource(cfg *config.Config, account string) (auth.CookieSource, error) {
	if account != "" {
		manager, err := auth.NewManager()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize credential manager: %w", err)
		}
		return manager.AccountSource(account), nil
	}

	if cfg.Instagram.Cookie != "" {
		return auth.StaticCookie(cfg.Instagram.Cookie), nil
	}

	env := auth.NewEnvironmentStore()
	return auth.CookieFunc(func() (string, error) {
		if cookie, err := env.Cookie(); err != nil || cookie != "" {
			return cookie, err
		}

		manager, err := auth.NewManager()
		if err != nil {
			return "", nil
		}
		account, err := manager.Retrieve(auth.DefaultAccountName)
		if err != nil {
			// No stored default: fall through to the missing-cookie validation error
			return "", nil
		}
		return account.Cookie, nil
	}), nil
}
