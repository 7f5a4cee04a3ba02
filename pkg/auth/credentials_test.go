package auth

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"igprofile/pkg/config"
	igerrors "igprofile/pkg/errors"
)

const validCookie = "sessionid=12345678%3Aabcdefgh; ds_user_id=12345678; csrftoken=YTQHujAgMhyveLvvuwCfw9CPI8ROAHoy"

func TestCredentialManager(t *testing.T) {
	manager, mockStore := NewMockManager()

	account := &Account{Name: "personal", Cookie: validCookie}
	require.NoError(t, manager.Store(account))
	assert.False(t, account.LastModified.IsZero())

	retrieved, err := manager.Retrieve("personal")
	require.NoError(t, err)
	assert.Equal(t, "personal", retrieved.Name)
	assert.Equal(t, validCookie, retrieved.Cookie)

	accounts, err := manager.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)

	require.NoError(t, manager.Delete("personal"))
	_, err = manager.Retrieve("personal")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
	assert.Zero(t, mockStore.Count())

	err = manager.Delete("personal")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestManagerStoreValidation(t *testing.T) {
	manager, mockStore := NewMockManager()

	err := manager.Store(&Account{Cookie: validCookie})
	assert.EqualError(t, err, "account name is required")

	err = manager.Store(&Account{Name: "x", Cookie: "sessionid=1"})
	require.Error(t, err)
	assert.True(t, igerrors.IsKind(err, igerrors.KindValidation))
	assert.Contains(t, err.Error(), "ds_user_id, csrftoken")

	assert.Zero(t, mockStore.Count())
}

func TestManagerFallback(t *testing.T) {
	broken := NewMockStore()
	broken.StoreError = errors.New("keychain locked")
	broken.RetrieveError = errors.New("keychain locked")
	working := NewMockStore()

	manager := NewManagerWithStores(broken, working)

	require.NoError(t, manager.Store(&Account{Name: "alt", Cookie: validCookie}))
	assert.True(t, working.Exists("alt"))
	assert.False(t, broken.Exists("alt"))

	account, err := manager.Retrieve("alt")
	require.NoError(t, err)
	assert.Equal(t, validCookie, account.Cookie)

	t.Run("all stores fail", func(t *testing.T) {
		failing := NewMockStore()
		failing.StoreError = errors.New("disk full")
		err := NewManagerWithStores(failing).Store(&Account{Name: "a", Cookie: validCookie})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestManagerListPrefersNewest(t *testing.T) {
	older := NewMockStore()
	newer := NewMockStore()
	require.NoError(t, older.Store(&Account{Name: "b", Cookie: "old", LastModified: time.Unix(100, 0)}))
	require.NoError(t, newer.Store(&Account{Name: "b", Cookie: "new", LastModified: time.Unix(200, 0)}))
	require.NoError(t, newer.Store(&Account{Name: "a", Cookie: "only", LastModified: time.Unix(50, 0)}))

	accounts, err := NewManagerWithStores(older, newer).List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a", accounts[0].Name)
	assert.Equal(t, "b", accounts[1].Name)
	assert.Equal(t, "new", accounts[1].Cookie)
}

func TestAccountSource(t *testing.T) {
	manager, _ := NewMockManager()
	require.NoError(t, manager.Store(&Account{Name: "work", Cookie: validCookie}))

	cookie, err := manager.AccountSource("work").Cookie()
	require.NoError(t, err)
	assert.Equal(t, validCookie, cookie)

	_, err = manager.AccountSource("missing").Cookie()
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestCookieAdapters(t *testing.T) {
	cookie, err := StaticCookie("sessionid=1").Cookie()
	require.NoError(t, err)
	assert.Equal(t, "sessionid=1", cookie)

	boom := errors.New("boom")
	_, err = CookieFunc(func() (string, error) { return "", boom }).Cookie()
	assert.ErrorIs(t, err, boom)
}

func TestSanitizeAccount(t *testing.T) {
	account := &Account{Name: "personal", Cookie: validCookie, LastModified: time.Unix(1, 0)}
	sanitized := SanitizeAccount(account)

	assert.Equal(t, "personal", sanitized.Name)
	assert.Equal(t, account.LastModified, sanitized.LastModified)
	assert.Equal(t, "sessionid=1234...efgh; ds_user_id=********; csrftoken=YTQH...AHoy", sanitized.Cookie)
	assert.NotContains(t, sanitized.Cookie, "abcdefgh")

	assert.Nil(t, SanitizeAccount(nil))
	assert.Equal(t, "a=********; ********", MaskCookie("a=1;b"))
}

func TestEncryptedFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.enc")
	store, err := NewEncryptedFileStoreWithPassphrase(path, "test-passphrase")
	require.NoError(t, err)

	assert.False(t, store.Exists("personal"))
	accounts, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	account := &Account{Name: "personal", Cookie: validCookie, LastModified: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Store(account))
	require.NoError(t, store.Store(&Account{Name: "alt", Cookie: "sessionid=2"}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "sessionid")
	assert.NotContains(t, string(content), "personal")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	retrieved, err := store.Retrieve("personal")
	require.NoError(t, err)
	assert.Equal(t, account.Cookie, retrieved.Cookie)
	assert.True(t, account.LastModified.Equal(retrieved.LastModified))

	accounts, err = store.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "alt", accounts[0].Name)

	t.Run("wrong passphrase", func(t *testing.T) {
		other, err := NewEncryptedFileStoreWithPassphrase(path, "wrong")
		require.NoError(t, err)
		_, err = other.Retrieve("personal")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrypt data")
	})

	require.NoError(t, store.Delete("personal"))
	assert.ErrorIs(t, store.Delete("personal"), ErrCredentialsNotFound)
	require.NoError(t, store.Delete("alt"))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEncryptedFileStorePassphraseFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(PassphraseEnvVar, "from-env")

	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Store(&Account{Name: "a", Cookie: validCookie}))

	reopened, err := NewEncryptedFileStoreWithPassphrase(path, "from-env")
	require.NoError(t, err)
	assert.True(t, reopened.Exists("a"))

	_, err = NewEncryptedFileStoreWithPassphrase(path, "")
	assert.Error(t, err)
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	t.Setenv(config.CookieEnvVar, "")
	cookie, err := store.Cookie()
	require.NoError(t, err)
	assert.Empty(t, cookie)
	assert.False(t, store.Exists(DefaultAccountName))
	_, err = store.Retrieve(DefaultAccountName)
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	t.Setenv(config.CookieEnvVar, validCookie)
	cookie, err = store.Cookie()
	require.NoError(t, err)
	assert.Equal(t, validCookie, cookie)

	account, err := store.Retrieve(DefaultAccountName)
	require.NoError(t, err)
	assert.Equal(t, validCookie, account.Cookie)

	_, err = store.Retrieve("other")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	accounts, err := store.List()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	assert.ErrorIs(t, store.Store(account), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete(DefaultAccountName), ErrStoreUnavailable)
}

func TestManagerFallsBackToEnvironment(t *testing.T) {
	t.Setenv(config.CookieEnvVar, validCookie)

	manager := NewManagerWithStores(NewMockStore(), NewEnvironmentStore())

	account, err := manager.Retrieve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAccountName, account.Name)
	assert.Equal(t, validCookie, account.Cookie)

	// read-only store errors do not mask "not found"
	assert.ErrorIs(t, manager.Delete("ghost"), ErrCredentialsNotFound)
}

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()

	store, err := NewKeyringStore()
	require.NoError(t, err)

	require.NoError(t, store.Store(&Account{Name: "b", Cookie: validCookie}))
	require.NoError(t, store.Store(&Account{Name: "a", Cookie: "sessionid=2"}))
	assert.True(t, store.Exists("a"))

	account, err := store.Retrieve("b")
	require.NoError(t, err)
	assert.Equal(t, validCookie, account.Cookie)

	accounts, err := store.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a", accounts[0].Name)
	assert.Equal(t, "b", accounts[1].Name)

	require.NoError(t, store.Delete("a"))
	assert.ErrorIs(t, store.Delete("a"), ErrCredentialsNotFound)
	_, err = store.Retrieve("a")
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	accounts, err = store.List()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	t.Run("unavailable keychain", func(t *testing.T) {
		keyring.MockInitWithError(errors.New("no dbus"))
		t.Cleanup(keyring.MockInit)

		_, err := NewKeyringStore()
		assert.Error(t, err)
	})
}

func TestCookieGuide(t *testing.T) {
	var buf bytes.Buffer
	WriteCookieGuide(&buf)
	assert.Contains(t, buf.String(), "sessionid")
	assert.Contains(t, buf.String(), "ds_user_id")
	assert.Contains(t, buf.String(), "csrftoken")

	buf.Reset()
	WriteQuickGuide(&buf)
	assert.Contains(t, buf.String(), "igprofile auth guide")
}
