package sqliterepo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alphaalpha-app/fairshare-gateway/credentials"
	"github.com/alphaalpha-app/fairshare-gateway/credentials/sqliterepo"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *sqliterepo.Repo {
	t.Helper()
	repo, err := sqliterepo.Open(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testCredential(username string) *credentials.Credential {
	return &credentials.Credential{
		ID:        "id-" + username,
		Username:  username,
		Verifier:  "00ff:aabb",
		CreatedAt: time.Now().UTC(),
	}
}

func TestInsertAndFindByUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testCredential("alice")))

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "id-alice", found.ID)
	require.Equal(t, "alice", found.Username)
	require.Equal(t, "00ff:aabb", found.Verifier)
	require.False(t, found.CreatedAt.IsZero())
}

func TestFindByUsernameNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, credentials.ErrNotFound)
}

func TestInsertDuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testCredential("alice")))

	duplicate := testCredential("alice")
	duplicate.ID = "id-other"
	require.ErrorIs(t, repo.Insert(ctx, duplicate), credentials.ErrUsernameTaken)
}

// The username column uses binary collation, so lookups and uniqueness are
// case-sensitive: Alice and alice are different users.
func TestUsernamesAreCaseSensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testCredential("Alice")))
	require.NoError(t, repo.Insert(ctx, testCredential("alice")))

	_, err := repo.FindByUsername(ctx, "ALICE")
	require.ErrorIs(t, err, credentials.ErrNotFound)
}

// Concurrent registrations of the same username must not both succeed: the
// schema's UNIQUE constraint is the arbiter, not a pre-check read.
func TestConcurrentInsertSameUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	const attempts = 8
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		credential := testCredential("alice")
		credential.ID = credential.ID + "-" + string(rune('a'+i))
		go func() {
			results <- repo.Insert(ctx, credential)
		}()
	}

	var succeeded, taken int
	for i := 0; i < attempts; i++ {
		switch err := <-results; {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, credentials.ErrUsernameTaken)
			taken++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, attempts-1, taken)
}
