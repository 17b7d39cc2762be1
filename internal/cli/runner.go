package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aznadocs/docsuneed/internal/config"
	"github.com/aznadocs/docsuneed/internal/model"
	"github.com/aznadocs/docsuneed/internal/session"
	"github.com/aznadocs/docsuneed/internal/store"
	"github.com/aznadocs/docsuneed/internal/store/jsonstore"
	"github.com/aznadocs/docsuneed/internal/tui"
	"github.com/aznadocs/docsuneed/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	ShowIDs bool   // print entity ids in ls/show output
	Theme   string // overrides DOCSUNEED_THEME when set
	NoColor bool
}

// env wires one command invocation: config, logger, files, store.
// Each CLI run is its own process, so load happens here and every
// accepted mutation saves through the store's persist hooks.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	files *jsonstore.Files
	st    *store.Store
}

func newEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := config.NewLogger(cfg.Debug)
	files := jsonstore.New(cfg.DataDir, log)
	st := store.New(files.LoadTree(), files.LoadChecked(),
		store.WithTreePersist(files.SaveTree),
		store.WithCheckedPersist(files.SaveChecked),
		store.WithLogger(log),
	)
	return &env{cfg: cfg, log: log, files: files, st: st}, nil
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	e, err := newEnv()
	if err != nil {
		ui.Fail("config: " + err.Error())
		return 1
	}

	theme := opt.Theme
	if theme == "" {
		theme = e.cfg.Theme
	}
	ui.SetTheme(theme)
	ui.SetColorForcing(false, opt.NoColor)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "browse":
		return doBrowse(e)

	case "ls":
		return doList(e, opt)

	case "show":
		if len(a) != 1 {
			ui.Fail("usage: docsuneed show <service>")
			return 2
		}
		return doShow(e, a[0], opt)

	case "check":
		if len(a) != 1 {
			ui.Fail("usage: docsuneed check <item-id>")
			return 2
		}
		return doCheck(e, a[0])

	case "add-service":
		return doAddService(e, a)

	case "edit-service":
		return doEditService(e, a)

	case "rm-service":
		if len(a) != 1 {
			ui.Fail("usage: docsuneed rm-service <service>")
			return 2
		}
		return doRemoveService(e, a[0])

	case "add-section":
		return doAddSection(e, a)

	case "edit-section":
		return doEditSection(e, a)

	case "rm-section":
		if len(a) != 2 {
			ui.Fail("usage: docsuneed rm-section <service> <section-id>")
			return 2
		}
		return doRemoveSection(e, a[0], a[1])

	case "add-item":
		return doAddItem(e, a)

	case "rm-item":
		if len(a) != 3 {
			ui.Fail("usage: docsuneed rm-item <service> <section-id> <item-id>")
			return 2
		}
		return doRemoveItem(e, a[0], a[1], a[2])

	case "admin":
		if len(a) == 0 {
			ui.Fail("usage: docsuneed admin <login|logout|status>")
			return 2
		}
		switch a[0] {
		case "login":
			return doAdminLogin(e)
		case "logout":
			return doAdminLogout(e)
		case "status":
			return doAdminStatus(e)
		default:
			ui.Fail("usage: docsuneed admin <login|logout|status>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`docsuneed - document checklists for slow paperwork days

Usage:
  docsuneed <subcommand> [args]

Subcommands:
  browse                                Interactive browser (TUI)
  ls                                    List services
  show <service>                        Show a service checklist
  check <item-id>                       Toggle an item checked/unchecked

Admin subcommands (require an admin session):
  admin <login|logout|status>           Manage the admin session
  add-service [-i icon] <name...>       Create a service
  edit-service [-i icon] <service> <name...>
  rm-service <service>                  Delete a service and its contents
  add-section [-i icon|-img url] [-d desc] <service> <title...>
  edit-section [-i icon|-img url] [-d desc] <service> <section-id> <title...>
  rm-section <service> <section-id>
  add-item [-m] [-o] <service> <section-id> <name...>
  rm-item <service> <section-id> <item-id>

<service> may be a service id or its exact name.
Flags: -m mandatory, -o offline only.

Examples:
  docsuneed browse
  docsuneed show "Voter ID Services"
  docsuneed check item-birth-cert
  docsuneed add-item -m service-voter sec-voter-age "Utility Bill"
`)
}

// ---------------------------------------------------
// Admin session subcommands
// ---------------------------------------------------

func (e *env) verifier() session.Verifier {
	return session.StaticVerifier{Credential: e.cfg.AdminPassword}
}

func doAdminLogin(e *env) int {
	ctrl := session.NewController(e.verifier())
	ctrl.RequestAdmin()

	fmt.Print("Admin password: ")
	var password string
	if _, err := fmt.Scanln(&password); err != nil {
		ui.Fail("read password: " + err.Error())
		return 1
	}
	if err := ctrl.SubmitPassword(password); err != nil {
		ui.Fail(ctrl.LoginError())
		return 1
	}
	if err := session.SaveMarker(e.cfg.DataDir); err != nil {
		ui.Fail("save session: " + err.Error())
		return 1
	}
	ui.OK("admin session started")
	return 0
}

func doAdminLogout(e *env) int {
	if err := session.ClearMarker(e.cfg.DataDir); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("admin session ended")
	return 0
}

func doAdminStatus(e *env) int {
	m, err := session.ReadMarker(e.cfg.DataDir)
	if err != nil {
		ui.Fail("status: " + err.Error())
		return 1
	}
	if m == nil {
		fmt.Println(ui.C(ui.Current().Muted, "viewer mode"))
		fmt.Println("Run: docsuneed admin login")
		return 0
	}
	fmt.Println("admin mode")
	fmt.Printf("since: %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"))
	return 0
}

// requireAdmin gates mutating subcommands on an active admin session.
func requireAdmin(e *env) int {
	if !session.HasMarker(e.cfg.DataDir) {
		ui.Fail("admin session required. Run `docsuneed admin login`")
		return 2
	}
	return 0
}

// ---------------------------------------------------
// Read subcommands
// ---------------------------------------------------

func doBrowse(e *env) int {
	ctrl := session.NewController(e.verifier())
	if session.HasMarker(e.cfg.DataDir) {
		ctrl.ResumeAdmin()
	}
	if err := tui.Run(e.st, ctrl); err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	return 0
}

func doList(e *env, opt Options) int {
	services := e.st.Services()
	checked := e.st.Checked()

	var lines []string
	lines = append(lines, ui.C(ui.Current().Title, "Services"))
	lines = append(lines, "")
	if len(services) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, "no services"))
	}
	for _, svc := range services {
		done, total := serviceStats(svc, checked)
		line := fmt.Sprintf("%s %s  %s", svc.Icon.Glyph(), svc.Name,
			ui.C(ui.Current().Muted, ui.ProgressBar(done, total, 14)))
		if opt.ShowIDs {
			line += "  " + ui.C(ui.Current().Muted, svc.ID)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted, "Tip: open one with `docsuneed show <service>`"))
	ui.Panel(lines)
	return 0
}

func doShow(e *env, ref string, opt Options) int {
	svc, ok := resolveService(e.st, ref)
	if !ok {
		ui.Fail("no such service: " + ref)
		return 2
	}
	checked := e.st.Checked()

	var lines []string
	done, total := serviceStats(svc, checked)
	lines = append(lines,
		fmt.Sprintf("%s %s  %s", svc.Icon.Glyph(),
			ui.C(ui.Current().Title, svc.Name),
			ui.C(ui.Current().Muted, ui.ProgressBar(done, total, 20))))
	if opt.ShowIDs {
		lines = append(lines, ui.C(ui.Current().Muted, svc.ID))
	}
	for _, sec := range svc.Sections {
		lines = append(lines, "")
		header := sectionGlyph(sec) + " " + ui.C(ui.Current().Accent, sec.Title)
		if opt.ShowIDs {
			header += "  " + ui.C(ui.Current().Muted, sec.ID)
		}
		lines = append(lines, header)
		if sec.Description != "" {
			lines = append(lines, "  "+ui.C(ui.Current().Muted, sec.Description))
		}
		for _, it := range sec.Items {
			lines = append(lines, "  "+itemLine(it, checked[it.ID], opt.ShowIDs))
		}
		if len(sec.Items) == 0 {
			lines = append(lines, "  "+ui.C(ui.Current().Muted, "(no items)"))
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(ui.Current().Muted,
		ui.Current().SymMandatory+" mandatory  "+ui.Current().SymOffline+" offline only"))
	ui.Panel(lines)
	return 0
}

func doCheck(e *env, itemID string) int {
	if e.st.ToggleItem(itemID) {
		ui.OK("checked " + itemID)
	} else {
		ui.OK("unchecked " + itemID)
	}
	return 0
}

// ---------------------------------------------------
// Mutating subcommands (admin session required)
// ---------------------------------------------------

func doAddService(e *env, a []string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	icon := ""
	a = parseFlags(a, map[string]*string{"-i": &icon}, nil)
	if len(a) == 0 {
		ui.Fail("usage: docsuneed add-service [-i icon] <name...>")
		return 2
	}
	id, err := e.st.AddService(strings.Join(a, " "), icon)
	if err != nil {
		ui.Fail("add-service: " + err.Error())
		return 2
	}
	ui.OK("added " + id)
	return 0
}

func doEditService(e *env, a []string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	icon := ""
	a = parseFlags(a, map[string]*string{"-i": &icon}, nil)
	if len(a) < 2 {
		ui.Fail("usage: docsuneed edit-service [-i icon] <service> <name...>")
		return 2
	}
	svc, ok := resolveService(e.st, a[0])
	if !ok {
		ui.Fail("no such service: " + a[0])
		return 2
	}
	// full-replace contract: carry the unchanged icon along
	if icon == "" {
		icon = string(svc.Icon)
	}
	if err := e.st.EditService(svc.ID, strings.Join(a[1:], " "), icon); err != nil {
		ui.Fail("edit-service: " + err.Error())
		return 2
	}
	ui.OK("updated " + svc.ID)
	return 0
}

func doRemoveService(e *env, ref string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	svc, ok := resolveService(e.st, ref)
	if !ok {
		// deleting what is already gone is not an error
		ui.OK("nothing to remove")
		return 0
	}
	e.st.DeleteService(svc.ID)
	ui.OK("removed " + svc.Name)
	return 0
}

func doAddSection(e *env, a []string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	var icon, img, desc string
	a = parseFlags(a, map[string]*string{"-i": &icon, "-img": &img, "-d": &desc}, nil)
	if len(a) < 2 {
		ui.Fail("usage: docsuneed add-section [-i icon|-img url] [-d desc] <service> <title...>")
		return 2
	}
	svc, ok := resolveService(e.st, a[0])
	if !ok {
		ui.Fail("no such service: " + a[0])
		return 2
	}
	id, err := e.st.AddSection(svc.ID, store.SectionData{
		Title:       strings.Join(a[1:], " "),
		Description: desc,
		Hint:        hintFrom(icon, img),
	})
	if err != nil {
		ui.Fail("add-section: " + err.Error())
		return 2
	}
	ui.OK("added " + id)
	return 0
}

func doEditSection(e *env, a []string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	var icon, img, desc string
	a = parseFlags(a, map[string]*string{"-i": &icon, "-img": &img, "-d": &desc}, nil)
	if len(a) < 3 {
		ui.Fail("usage: docsuneed edit-section [-i icon|-img url] [-d desc] <service> <section-id> <title...>")
		return 2
	}
	svc, ok := resolveService(e.st, a[0])
	if !ok {
		ui.Fail("no such service: " + a[0])
		return 2
	}
	// full-replace contract: fields without a flag keep their value
	hint := hintFrom(icon, img)
	for _, sec := range svc.Sections {
		if sec.ID != a[1] {
			continue
		}
		if desc == "" {
			desc = sec.Description
		}
		if icon == "" && img == "" {
			hint = sec.Hint
		}
	}
	err := e.st.EditSection(svc.ID, a[1], store.SectionData{
		Title:       strings.Join(a[2:], " "),
		Description: desc,
		Hint:        hint,
	})
	if err != nil {
		ui.Fail("edit-section: " + err.Error())
		return 2
	}
	ui.OK("updated " + a[1])
	return 0
}

func doRemoveSection(e *env, ref, sectionID string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	svc, ok := resolveService(e.st, ref)
	if !ok {
		ui.OK("nothing to remove")
		return 0
	}
	e.st.DeleteSection(svc.ID, sectionID)
	ui.OK("removed " + sectionID)
	return 0
}

func doAddItem(e *env, a []string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	var mandatory, offline bool
	a = parseFlags(a, nil, map[string]*bool{"-m": &mandatory, "-o": &offline})
	if len(a) < 3 {
		ui.Fail("usage: docsuneed add-item [-m] [-o] <service> <section-id> <name...>")
		return 2
	}
	svc, ok := resolveService(e.st, a[0])
	if !ok {
		ui.Fail("no such service: " + a[0])
		return 2
	}
	id, err := e.st.AddItem(svc.ID, a[1], store.ItemData{
		Name:        strings.Join(a[2:], " "),
		Mandatory:   mandatory,
		OfflineOnly: offline,
	})
	if err != nil {
		ui.Fail("add-item: " + err.Error())
		return 2
	}
	ui.OK("added " + id)
	return 0
}

func doRemoveItem(e *env, ref, sectionID, itemID string) int {
	if code := requireAdmin(e); code != 0 {
		return code
	}
	svc, ok := resolveService(e.st, ref)
	if !ok {
		ui.OK("nothing to remove")
		return 0
	}
	e.st.DeleteItem(svc.ID, sectionID, itemID)
	ui.OK("removed " + itemID)
	return 0
}

// ---------------------------------------------------
// helpers
// ---------------------------------------------------

// resolveService accepts a service id or its exact name.
func resolveService(st *store.Store, ref string) (model.Service, bool) {
	if svc, ok := st.Service(ref); ok {
		return svc, true
	}
	for _, svc := range st.Services() {
		if svc.Name == ref {
			return svc, true
		}
	}
	return model.Service{}, false
}

// parseFlags consumes leading -x [value] pairs and -y switches, leaving
// positional args.
func parseFlags(a []string, vals map[string]*string, switches map[string]*bool) []string {
	for len(a) > 0 && strings.HasPrefix(a[0], "-") {
		if p, ok := switches[a[0]]; ok {
			*p = true
			a = a[1:]
			continue
		}
		if p, ok := vals[a[0]]; ok && len(a) >= 2 {
			*p = a[1]
			a = a[2:]
			continue
		}
		break
	}
	return a
}

func hintFrom(icon, img string) model.DisplayHint {
	switch {
	case icon != "":
		return model.IconHint(model.ParseIcon(icon))
	case img != "":
		return model.ImageHint(img)
	default:
		return model.DisplayHint{}
	}
}

func sectionGlyph(sec model.Section) string {
	switch sec.Hint.Kind {
	case model.HintIcon:
		return sec.Hint.Icon.Glyph()
	case model.HintImage:
		return "▣"
	default:
		return "▢"
	}
}

func itemLine(it model.Item, checked bool, showID bool) string {
	t := ui.Current()
	box := ui.C(t.Muted, t.BoxUnchecked)
	name := it.Name
	if checked {
		box = ui.C(t.Success, t.BoxChecked)
	}
	marks := ""
	if it.Mandatory {
		marks += " " + ui.C(t.Pending, t.SymMandatory)
	}
	if it.OfflineOnly {
		marks += " " + ui.C(t.Accent, t.SymOffline)
	}
	line := fmt.Sprintf("%s %s%s", box, name, marks)
	if showID {
		line += "  " + ui.C(t.Muted, it.ID)
	}
	return line
}

func serviceStats(svc model.Service, checked model.CheckedState) (done, total int) {
	for _, sec := range svc.Sections {
		for _, it := range sec.Items {
			total++
			if checked[it.ID] {
				done++
			}
		}
	}
	return
}
