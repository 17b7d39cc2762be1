package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aznadocs/docsuneed/internal/model"
)

// seeds a store with one service / one section / two items and returns
// all the ids.
func seededStore(t *testing.T, opts ...Option) (st *Store, svcID, secID, item1, item2 string) {
	t.Helper()
	st = New(nil, nil, opts...)

	svcID, err := st.AddService("Voter ID Services", "Vote")
	require.NoError(t, err)
	secID, err = st.AddSection(svcID, SectionData{Title: "Proof of Address"})
	require.NoError(t, err)
	item1, err = st.AddItem(svcID, secID, ItemData{Name: "Ration Card", Mandatory: true})
	require.NoError(t, err)
	item2, err = st.AddItem(svcID, secID, ItemData{Name: "Water Bill"})
	require.NoError(t, err)
	return st, svcID, secID, item1, item2
}

func TestAddServiceValidation(t *testing.T) {
	st := New(nil, nil)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := st.AddService(name, "FileText")
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, st.Services(), 0, "rejected add must not grow the tree")
	}

	id, err := st.AddService("  Passport Services  ", "")
	require.NoError(t, err)
	svc, ok := st.Service(id)
	require.True(t, ok)
	assert.Equal(t, "Passport Services", svc.Name, "name is trimmed")
	assert.Equal(t, model.DefaultIcon, svc.Icon, "empty icon falls back to default")
}

func TestSectionAndItemValidation(t *testing.T) {
	st, svcID, secID, _, _ := seededStore(t)

	_, err := st.AddSection(svcID, SectionData{Title: "  "})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = st.AddItem(svcID, secID, ItemData{Name: ""})
	require.ErrorAs(t, err, &verr)

	svc, _ := st.Service(svcID)
	require.Len(t, svc.Sections, 1)
	assert.Len(t, svc.Sections[0].Items, 2)
}

func TestCascadeDeleteService(t *testing.T) {
	st, svcID, _, _, _ := seededStore(t)

	st.DeleteService(svcID)

	assert.Empty(t, st.Services(), "no section or item may stay reachable")
	_, ok := st.Service(svcID)
	assert.False(t, ok)
}

func TestCascadeDeleteSection(t *testing.T) {
	st, svcID, secID, _, _ := seededStore(t)

	st.DeleteSection(svcID, secID)

	svc, ok := st.Service(svcID)
	require.True(t, ok)
	assert.Empty(t, svc.Sections)
}

func TestDeleteIsIdempotent(t *testing.T) {
	st, svcID, secID, item1, _ := seededStore(t)

	st.DeleteItem(svcID, secID, item1)
	after := st.Services()
	st.DeleteItem(svcID, secID, item1) // second call: no-op, not an error
	assert.Equal(t, after, st.Services())

	st.DeleteSection(svcID, secID)
	st.DeleteSection(svcID, secID)
	st.DeleteService(svcID)
	st.DeleteService(svcID)
	assert.Empty(t, st.Services())
}

func TestAddItemAppends(t *testing.T) {
	st, svcID, secID, _, _ := seededStore(t)

	before, _ := st.Service(svcID)
	prefix := before.Sections[0].Items

	id, err := st.AddItem(svcID, secID, ItemData{Name: "Bank Passbook"})
	require.NoError(t, err)

	after, _ := st.Service(svcID)
	items := after.Sections[0].Items
	require.Len(t, items, len(prefix)+1)
	assert.Equal(t, prefix, items[:len(prefix)], "existing order untouched")
	assert.Equal(t, id, items[len(items)-1].ID)
}

func TestEditSectionDoesNotTouchSiblings(t *testing.T) {
	st, svcID, secID, _, _ := seededStore(t)

	// sibling in the same service
	sib, err := st.AddSection(svcID, SectionData{Title: "Proof of Identity"})
	require.NoError(t, err)
	// section with the same title in a different service
	otherSvc, err := st.AddService("Aadhaar Services", "Fingerprint")
	require.NoError(t, err)
	otherSec, err := st.AddSection(otherSvc, SectionData{Title: "Proof of Address"})
	require.NoError(t, err)

	require.NoError(t, st.EditSection(svcID, secID, SectionData{
		Title: "Current Address Proof",
		Hint:  model.IconHint(model.IconMapPin),
	}))

	svc, _ := st.Service(svcID)
	assert.Equal(t, "Current Address Proof", svc.Sections[0].Title)
	assert.Equal(t, "Proof of Identity", svc.Sections[1].Title)
	assert.Equal(t, sib, svc.Sections[1].ID)

	other, _ := st.Service(otherSvc)
	require.Len(t, other.Sections, 1)
	assert.Equal(t, otherSec, other.Sections[0].ID)
	assert.Equal(t, "Proof of Address", other.Sections[0].Title)
	assert.Equal(t, model.DisplayHint{}, other.Sections[0].Hint)
}

func TestEditPreservesIDAndChildren(t *testing.T) {
	st, svcID, secID, item1, item2 := seededStore(t)

	require.NoError(t, st.EditService(svcID, "Voter Services", "Lock"))
	svc, ok := st.Service(svcID)
	require.True(t, ok)
	assert.Equal(t, "Voter Services", svc.Name)
	assert.Equal(t, model.IconLock, svc.Icon)
	require.Len(t, svc.Sections, 1)
	assert.Equal(t, secID, svc.Sections[0].ID)

	require.NoError(t, st.EditSection(svcID, secID, SectionData{Title: "Address"}))
	svc, _ = st.Service(svcID)
	require.Len(t, svc.Sections[0].Items, 2)
	assert.Equal(t, item1, svc.Sections[0].Items[0].ID)
	assert.Equal(t, item2, svc.Sections[0].Items[1].ID)
}

func TestMissingIDsAreSilentNoOps(t *testing.T) {
	st, svcID, secID, _, _ := seededStore(t)
	before := st.Services()

	assert.NoError(t, st.EditService("svc-gone", "X", ""))
	assert.NoError(t, st.EditSection(svcID, "sec-gone", SectionData{Title: "X"}))
	assert.NoError(t, st.EditSection("svc-gone", secID, SectionData{Title: "X"}))

	id, err := st.AddSection("svc-gone", SectionData{Title: "X"})
	assert.NoError(t, err)
	assert.Empty(t, id)
	id, err = st.AddItem(svcID, "sec-gone", ItemData{Name: "X"})
	assert.NoError(t, err)
	assert.Empty(t, id)

	st.DeleteService("svc-gone")
	st.DeleteSection(svcID, "sec-gone")
	st.DeleteItem(svcID, secID, "item-gone")

	assert.Equal(t, before, st.Services())
}

func TestToggleInvolutionAndIndependence(t *testing.T) {
	st, _, _, item1, item2 := seededStore(t)

	assert.False(t, st.IsChecked(item1))
	assert.True(t, st.ToggleItem(item1))
	assert.True(t, st.IsChecked(item1))
	assert.False(t, st.IsChecked(item2), "toggling one item never touches another")

	assert.False(t, st.ToggleItem(item1), "double toggle restores the original value")
	assert.False(t, st.IsChecked(item1))
}

func TestToggleUnknownIDIsHarmless(t *testing.T) {
	st, svcID, _, _, _ := seededStore(t)
	before := st.Services()

	assert.True(t, st.ToggleItem("item-never-existed"))
	assert.True(t, st.IsChecked("item-never-existed"))
	assert.Equal(t, before, st.Services(), "tree is untouched")

	// orphan entries survive deletion of their item's whole service
	st.DeleteService(svcID)
	assert.True(t, st.IsChecked("item-never-existed"))
}

func TestPersistHooks(t *testing.T) {
	var treeSaves, checkedSaves int
	st, _, secID, item1, _ := seededStore(t,
		WithTreePersist(func([]model.Service) error { treeSaves++; return nil }),
		WithCheckedPersist(func(model.CheckedState) error { checkedSaves++; return nil }),
	)
	// seededStore performed 4 accepted tree mutations
	assert.Equal(t, 4, treeSaves)
	assert.Equal(t, 0, checkedSaves)

	st.ToggleItem(item1)
	assert.Equal(t, 4, treeSaves, "toggles never trigger a tree save")
	assert.Equal(t, 1, checkedSaves)

	// rejected and no-op mutations do not save
	_, err := st.AddService(" ", "")
	require.Error(t, err)
	st.DeleteSection("svc-gone", secID)
	assert.Equal(t, 4, treeSaves)
}

func TestReadsAreDeepCopies(t *testing.T) {
	st, svcID, _, item1, _ := seededStore(t)

	out := st.Services()
	out[0].Name = "mangled"
	out[0].Sections[0].Title = "mangled"
	out[0].Sections[0].Items[0].Name = "mangled"

	svc, _ := st.Service(svcID)
	assert.Equal(t, "Voter ID Services", svc.Name)
	assert.Equal(t, "Proof of Address", svc.Sections[0].Title)
	assert.Equal(t, "Ration Card", svc.Sections[0].Items[0].Name)

	checked := st.Checked()
	checked[item1] = true
	assert.False(t, st.IsChecked(item1))
}

func TestIDsArePrefixedAndUnique(t *testing.T) {
	_, svcID, secID, item1, item2 := seededStore(t)

	assert.Contains(t, svcID, "svc-")
	assert.Contains(t, secID, "sec-")
	assert.Contains(t, item1, "item-")
	assert.NotEqual(t, item1, item2)
}
