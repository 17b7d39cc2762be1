package cli

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aznadocs/docsuneed/internal/model"
	"github.com/aznadocs/docsuneed/internal/session"
	"github.com/aznadocs/docsuneed/internal/store/jsonstore"
)

// adminEnv points the CLI at a scratch data dir with an active admin
// session, so mutating subcommands run against the seed tree.
func adminEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DOCSUNEED_DATA_DIR", dir)
	t.Setenv("DOCSUNEED_ADMIN_PASSWORD", "hunter2")
	t.Setenv("DOCSUNEED_THEME", "mono")
	require.NoError(t, session.SaveMarker(dir))
	return dir
}

func loadService(t *testing.T, dir, id string) model.Service {
	t.Helper()
	for _, svc := range jsonstore.New(dir, zerolog.Nop()).LoadTree() {
		if svc.ID == id {
			return svc
		}
	}
	t.Fatalf("service %s not in saved tree", id)
	return model.Service{}
}

func TestEditServiceKeepsIconWhenFlagOmitted(t *testing.T) {
	dir := adminEnv(t)

	code := Run([]string{"edit-service", "service-voter", "Voter Services"}, Options{NoColor: true})
	require.Equal(t, 0, code)

	svc := loadService(t, dir, "service-voter")
	assert.Equal(t, "Voter Services", svc.Name)
	assert.Equal(t, model.IconVote, svc.Icon, "a rename must not reset the icon")
}

func TestEditServiceIconFlagStillOverrides(t *testing.T) {
	dir := adminEnv(t)

	code := Run([]string{"edit-service", "-i", "Lock", "service-voter", "Voter Services"}, Options{NoColor: true})
	require.Equal(t, 0, code)

	svc := loadService(t, dir, "service-voter")
	assert.Equal(t, model.IconLock, svc.Icon)
}

func TestEditSectionKeepsDescriptionAndHintWhenFlagsOmitted(t *testing.T) {
	dir := adminEnv(t)

	code := Run([]string{"edit-section", "service-voter", "sec-voter-age", "Date of Birth"}, Options{NoColor: true})
	require.Equal(t, 0, code)

	svc := loadService(t, dir, "service-voter")
	require.NotEmpty(t, svc.Sections)
	sec := svc.Sections[0]
	assert.Equal(t, "sec-voter-age", sec.ID)
	assert.Equal(t, "Date of Birth", sec.Title)
	assert.Equal(t, "Mandatory for new applications. One required.", sec.Description)
	assert.Equal(t, model.IconHint(model.IconCalendar), sec.Hint)
}

func TestMutationsRequireAdminSession(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOCSUNEED_DATA_DIR", dir)
	t.Setenv("DOCSUNEED_THEME", "mono")

	code := Run([]string{"edit-service", "service-voter", "Hijacked"}, Options{NoColor: true})
	assert.Equal(t, 2, code)
}
