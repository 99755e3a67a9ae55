package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pizzly-labs/pizzly/internal/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	githubJSON = `{
  "name": "GitHub",
  "auth": {
    "authType": "OAUTH2",
    "authorizationURL": "https://github.com/login/oauth/authorize",
    "tokenURL": "https://github.com/login/oauth/access_token"
  },
  "request": {
    "baseURL": "https://api.github.com/",
    "headers": { "Authorization": "token ${auth.accessToken}" }
  }
}`

	slackYAML = `name: Slack
auth:
  authType: OAUTH2
  authorizationURL: https://slack.com/oauth/v2/authorize
  tokenURL: https://slack.com/api/oauth.v2.access
request:
  baseURL: https://slack.com/api/
`
)

func testBuilders() map[string]Builder {
	return map[string]Builder{
		"zenmoney": func() []Variant {
			return []Variant{
				{Name: "oauth2", Descriptor: descriptor.RawDescriptor{
					ID:   "zenmoney",
					Name: "Zenmoney",
					Auth: &descriptor.RawAuth{AuthType: descriptor.AuthOAuth2},
				}},
				{Name: "oauth1", Descriptor: descriptor.RawDescriptor{
					ID:   "zenmoney-legacy",
					Name: "Zenmoney (legacy API)",
					Auth: &descriptor.RawAuth{AuthType: descriptor.AuthOAuth1},
				}},
			}
		},
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func newObservedRegistry(t *testing.T, dir string) (*Registry, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	r := New(dir, WithLogger(zap.New(core)), WithBuilders(testBuilders()))
	return r, logs
}

func ids(list []descriptor.IntegrationDescriptor) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.ID)
	}
	return out
}

func TestList_LoadsSupportedKindsInDirectoryOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"github.json":  githubJSON,
		"slack.yml":    slackYAML,
		"zenmoney.js":  "// built in",
		"index.js":     "module.exports = {}",
		"README.md":    "# integrations",
		"notes.backup": "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts"), 0o755))

	r, logs := newObservedRegistry(t, dir)
	list, err := r.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"github", "slack", "zenmoney", "zenmoney-legacy"}, ids(list))

	skipped := logs.FilterMessage("skipping integration file: unsupported extension")
	assert.Equal(t, 2, skipped.Len())
	for _, entry := range skipped.All() {
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	}
}

func TestList_NormalizesDescriptors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"github.json": githubJSON})

	r, _ := newObservedRegistry(t, dir)
	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	d := list[0]
	assert.Equal(t, "github", d.ID)
	assert.Equal(t, "https://logo.clearbit.com/github.com", d.Image)
	key, secret := d.Auth.SetupLabels()
	assert.Equal(t, "Client ID", key)
	assert.Equal(t, "Client Secret", secret)
	assert.Equal(t, "token ${auth.accessToken}", d.Request.Headers["Authorization"])
}

func TestList_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"github.json": githubJSON,
		"slack.yaml":  slackYAML,
		"zenmoney.js": "",
	})

	r, _ := newObservedRegistry(t, dir)
	first, err := r.List(context.Background())
	require.NoError(t, err)
	second, err := r.List(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, ids(first), ids(second))
}

func TestList_EmptyDirectory(t *testing.T) {
	r := New(t.TempDir())
	list, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_DirectoryUnreadable(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing"))

	list, err := r.List(context.Background())
	require.ErrorIs(t, err, ErrDirectoryAccess)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Nil(t, list)
}

func TestList_DirectoryFailureKeepsPreviousCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "integrations")
	require.NoError(t, os.Mkdir(dir, 0o755))
	writeFiles(t, dir, map[string]string{"github.json": githubJSON})

	r := New(dir)
	_, err := r.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	_, err = r.List(context.Background())
	require.ErrorIs(t, err, ErrDirectoryAccess)

	d, err := r.Get(context.Background(), "github")
	require.NoError(t, err)
	assert.Equal(t, "github", d.ID)
}

func TestList_SkipsBrokenEntries(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"broken.json":     `{ "name": `,
		"wrong-type.json": `{ "name": "Wrong", "auth": { "authType": "BASIC" } }`,
		"nameless.json":   `{ "auth": { "authType": "OAUTH2" } }`,
		"noauth.yaml":     "name: No Auth\n",
		"github.json":     githubJSON,
	})

	r, logs := newObservedRegistry(t, dir)
	list, err := r.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"github"}, ids(list))
	assert.Equal(t, 2, logs.FilterMessage("skipping integration file: error occurred while parsing").Len())
	assert.Equal(t, 2, logs.FilterMessage("skipping integration: error occurred while loading").Len())
}

func TestList_SkipsFailingVariantOnly(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"mixed.js": ""})

	builders := map[string]Builder{
		"mixed": func() []Variant {
			return []Variant{
				{Name: "broken", Descriptor: descriptor.RawDescriptor{}},
				{Name: "oauth2", Descriptor: descriptor.RawDescriptor{
					Name: "Mixed",
					Auth: &descriptor.RawAuth{AuthType: descriptor.AuthOAuth2},
				}},
			}
		},
	}
	r := New(dir, WithBuilders(builders))
	list, err := r.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "mixed", list[0].ID)
	assert.Equal(t, "Mixed", list[0].Name)
}

func TestList_CodeKindWithoutBuilder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"unknown.js":  "module.exports = { oauth2: {} }",
		"github.json": githubJSON,
	})

	r, logs := newObservedRegistry(t, dir)
	list, err := r.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"github"}, ids(list))
	assert.Equal(t, 1, logs.FilterMessage("skipping integration file: no builder registered").Len())
}

func TestList_DuplicateIDsKeepFirst(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a-first.json":  `{ "id": "dup", "name": "First", "auth": { "authType": "OAUTH2" } }`,
		"b-second.yaml": "id: dup\nname: Second\nauth:\n  authType: OAUTH1\n",
	})

	r, logs := newObservedRegistry(t, dir)
	list, err := r.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "First", list[0].Name)

	d, err := r.Get(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, "First", d.Name)

	collisions := logs.FilterMessageSnippet("multiple integrations having the same id")
	require.Equal(t, 1, collisions.Len())
	fields := collisions.All()[0].ContextMap()
	assert.Equal(t, "dup", fields["id"])
	assert.Equal(t, "a-first.json", fields["kept"])
	assert.Equal(t, "b-second.yaml", fields["skipped"])
}

func TestList_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"github.json": githubJSON})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(dir)
	_, err := r.List(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// A failed scan leaves nothing cached, so Get scans again.
	d, err := r.Get(context.Background(), "github")
	require.NoError(t, err)
	assert.Equal(t, "github", d.ID)
}

func TestList_ReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"github.json": githubJSON, "slack.yaml": slackYAML})

	r := New(dir)
	list, err := r.List(context.Background())
	require.NoError(t, err)
	list[0], list[1] = list[1], list[0]

	d, err := r.Get(context.Background(), "github")
	require.NoError(t, err)
	assert.Equal(t, "GitHub", d.Name)
}

func TestGet_ListsLazily(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"zenmoney.js": ""})

	r, _ := newObservedRegistry(t, dir)
	d, err := r.Get(context.Background(), "zenmoney-legacy")
	require.NoError(t, err)
	assert.Equal(t, "zenmoney-legacy", d.ID)
	assert.True(t, d.IsOAuth1())
}

func TestGet_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"github.json": githubJSON, "slack.yaml": slackYAML})

	r := New(dir)
	_, err := r.Get(context.Background(), "nonexistent")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nonexistent", nf.ID)
	assert.Equal(t, []string{"github", "slack"}, nf.Known)
	assert.Contains(t, err.Error(), "nonexistent")
	assert.Equal(t, `cannot find integration having id="nonexistent", available ones are: ["github","slack"]`, err.Error())
}

func TestGet_DirectoryUnreadable(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "missing"))
	_, err := r.Get(context.Background(), "github")
	require.ErrorIs(t, err, ErrDirectoryAccess)
}

func TestGet_IndexFollowsLatestListing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"github.json": githubJSON})

	r := New(dir)
	_, err := r.Get(context.Background(), "github")
	require.NoError(t, err)

	// New files are not visible until the directory is listed again.
	writeFiles(t, dir, map[string]string{"slack.yaml": slackYAML})
	_, err = r.Get(context.Background(), "slack")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.List(context.Background())
	require.NoError(t, err)

	d, err := r.Get(context.Background(), "slack")
	require.NoError(t, err)
	assert.Equal(t, "Slack", d.Name)
}

func TestGet_ReusesIndexWithoutRescan(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"github.json": githubJSON})

	r := New(dir)
	_, err := r.Get(context.Background(), "github")
	require.NoError(t, err)
	first := r.memo.Load()

	_, err = r.Get(context.Background(), "github")
	require.NoError(t, err)
	assert.Same(t, first, r.memo.Load())

	_, err = r.List(context.Background())
	require.NoError(t, err)
	_, err = r.Get(context.Background(), "github")
	require.NoError(t, err)
	assert.NotSame(t, first, r.memo.Load())
}

func TestSplitEntryName(t *testing.T) {
	tests := []struct {
		file    string
		logical string
		ext     string
	}{
		{"github.json", "github", "json"},
		{"google.sheets.yaml", "google.sheets", "yaml"},
		{"README", "", "README"},
		{".hidden", "", "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			logical, ext := splitEntryName(tt.file)
			assert.Equal(t, tt.logical, logical)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, kindJSON, kindOf("JSON"))
	assert.Equal(t, kindYAML, kindOf("yml"))
	assert.Equal(t, kindCode, kindOf("js"))
	assert.Equal(t, kindUnsupported, kindOf("ts"))
}
