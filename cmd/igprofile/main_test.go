package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igprofile/pkg/config"
	"igprofile/pkg/errors"
	"igprofile/pkg/metadata"
)

const cliCookie = "sessionid=12345678%3Aabcdefgh; ds_user_id=12345678; csrftoken=YTQHujAgMhyveLvvuwCfw9CPI8ROAHoy"

// setupMockAPI serves web_profile_info and feed/user, answering profileStatus on the profile endpoint
func setupMockAPI(t *testing.T, profileStatus int) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/web_profile_info/", func(w http.ResponseWriter, r *http.Request) {
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)
			fmt.Fprint(w, `{"message":"Please wait a few minutes before you try again.","status":"fail"}`)
			return
		}
		fmt.Fprintf(w, `{"data":{"user":{"id":"787132","username":%q,"full_name":"National Geographic","edge_followed_by":{"count":283456789},"edge_follow":{"count":150},"is_verified":true}}}`,
			r.URL.Query().Get("username"))
	})
	mux.HandleFunc("/api/v1/feed/user/787132/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"image_versions2":{"candidates":[{"url":"https://cdn.example.com/a.jpg"}]}},
			{"carousel_media":[
				{"image_versions2":{"candidates":[{"url":"https://cdn.example.com/b1.jpg"}]}},
				{"image_versions2":{"candidates":[{"url":"https://cdn.example.com/b2.jpg"}]}}
			]}
		]}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.CookieEnvVar, cliCookie)
	t.Setenv("IGPROFILE_PROFILE_INFO_URL", server.URL+"/api/v1/users/web_profile_info/")
	t.Setenv("IGPROFILE_FEED_URL", server.URL+"/api/v1/feed/user/")
	t.Setenv("IGPROFILE_LOG_LEVEL", "disabled")
}

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFetchJSON(t *testing.T) {
	setupMockAPI(t, http.StatusOK)

	out, err := execute(t, "fetch", "@natgeo/", "--json")
	require.NoError(t, err)

	var result struct {
		Profile struct {
			ID             string `json:"id"`
			Username       string `json:"username"`
			FollowersCount int    `json:"followersCount"`
		} `json:"profile"`
		Images []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, "787132", result.Profile.ID)
	assert.Equal(t, "natgeo", result.Profile.Username)
	assert.Equal(t, 283456789, result.Profile.FollowersCount)
	assert.Equal(t, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b1.jpg",
		"https://cdn.example.com/b2.jpg",
	}, result.Images)
}

func TestFetchImagesOnlyJSON(t *testing.T) {
	setupMockAPI(t, http.StatusOK)

	out, err := execute(t, "fetch", "natgeo", "--images-only", "--json", "--count", "1")
	require.NoError(t, err)

	var images []string
	require.NoError(t, json.Unmarshal([]byte(out), &images))
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, images)
}

func TestFetchCard(t *testing.T) {
	setupMockAPI(t, http.StatusOK)

	out, err := execute(t, "fetch", "natgeo", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "@natgeo ✓")
	assert.Contains(t, out, "283,456,789")
	assert.Contains(t, out, "3 image(s)")
	assert.Contains(t, out, "https://cdn.example.com/b2.jpg")
}

func TestFetchRateLimited(t *testing.T) {
	setupMockAPI(t, http.StatusTooManyRequests)

	t.Run("lenient", func(t *testing.T) {
		out, err := execute(t, "fetch", "natgeo", "--no-color")
		require.NoError(t, err)
		assert.Contains(t, out, "Profile unavailable")
		assert.Contains(t, out, "No images found")
	})

	t.Run("strict", func(t *testing.T) {
		_, err := execute(t, "fetch", "natgeo", "--strict")
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindRateLimit))
	})
}

func TestFetchValidation(t *testing.T) {
	setupMockAPI(t, http.StatusOK)

	_, err := execute(t, "fetch", "a_username_that_is_far_too_long_for_instagram", "--strict")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindValidation))
}

func TestAuthGuide(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := execute(t, "auth", "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "INSTAGRAM COOKIE GUIDE")
}

func TestConfigShowMasksCookie(t *testing.T) {
	setupMockAPI(t, http.StatusOK)

	out, err := execute(t, "config", "show", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Current Configuration")
	assert.Contains(t, out, "ds_user_id=********")
	assert.NotContains(t, out, "YTQHujAgMhyveLvvuwCfw9CPI8ROAHoy")
}

func TestFetchSaveSnapshot(t *testing.T) {
	setupMockAPI(t, http.StatusOK)
	path := filepath.Join(t.TempDir(), "natgeo.yaml")

	_, err := execute(t, "fetch", "natgeo", "--json", "--save", path)
	require.NoError(t, err)

	snap, err := metadata.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "natgeo", snap.Username)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "787132", snap.Profile.ID)
	assert.Len(t, snap.Images, 3)
}

func TestFetchSaveKeepsSnapshotOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natgeo.json")

	setupMockAPI(t, http.StatusOK)
	_, err := execute(t, "fetch", "natgeo", "--json", "--save", path)
	require.NoError(t, err)

	setupMockAPI(t, http.StatusTooManyRequests)
	out, err := execute(t, "fetch", "natgeo", "--no-color", "--save", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Snapshot not updated")

	snap, err := metadata.Load(path)
	require.NoError(t, err)
	require.NotNil(t, snap.Profile)
	assert.Len(t, snap.Images, 3)
}

func TestFetchFlagsOverrideConfig(t *testing.T) {
	setupMockAPI(t, http.StatusOK)
	t.Setenv(config.CookieEnvVar, "")
	logPath := filepath.Join(t.TempDir(), "igprofile.log")

	out, err := execute(t, "fetch", "natgeo", "--json",
		"--cookie", cliCookie,
		"--timeout", "3s",
		"--log-file", logPath,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "787132")

	assert.Equal(t, cliCookie, cfg.Instagram.Cookie)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, logPath, cfg.Logging.File)
	assert.FileExists(t, logPath)
}

func TestCookieSourceSkipsCredentialManager(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.CookieEnvVar, cliCookie)

	source, err := cookieSource(config.DefaultConfig(), "")
	require.NoError(t, err)

	cookie, err := source.Cookie()
	require.NoError(t, err)
	assert.Equal(t, cliCookie, cookie)
	assert.NoDirExists(t, filepath.Join(xdg, "igprofile"))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestConfigInitWithPath(t *testing.T) {
	setupMockAPI(t, http.StatusOK)
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, err := execute(t, "config", "init", "--config", path, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created: "+path)

	loaded, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPostCount, loaded.Fetch.PostCount)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")
}

func TestConfigInitIsPickedUp(t *testing.T) {
	setupMockAPI(t, http.StatusOK)
	dir := t.TempDir()
	chdir(t, dir)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "igprofile.yaml"))

	written, err := config.Load("igprofile.yaml", nil)
	require.NoError(t, err)
	written.Fetch.PostCount = 5
	require.NoError(t, written.Save("igprofile.yaml"))

	loaded, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Fetch.PostCount)
}
