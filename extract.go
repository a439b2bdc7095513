// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/tools/go/packages"

	"codeberg.org/transcat/transcat/catalog"
	"codeberg.org/transcat/transcat/config"
)

// keywordRule describes one extraction keyword in gettext notation,
// Name[:singular[,plural[,context]]], with 1-based argument positions.
// A zero plural or context position means the keyword has none.
type keywordRule struct {
	name     string
	singular int
	plural   int
	context  int
}

// defaultKeywords covers the github.com/leonelquinteros/gotext API.
var defaultKeywords = []string{
	"Get:1",
	"GetN:1,2",
	"GetD:2",
	"GetND:2,3",
	"GetC:1,,2",
	"GetNC:1,2,4",
}

// parseKeyword parses a keyword spec. Empty positions stay unset and the
// singular position defaults to 1.
func parseKeyword(spec string) (keywordRule, error) {
	rule := keywordRule{singular: 1}

	name, args, found := strings.Cut(spec, ":")

	rule.name = name
	if rule.name == "" {
		return keywordRule{}, fmt.Errorf("keyword %q: empty name", spec)
	}

	if !found {
		return rule, nil
	}

	slots := strings.Split(args, ",")
	if len(slots) > 3 {
		return keywordRule{}, fmt.Errorf("keyword %q: too many argument positions", spec)
	}

	targets := []*int{&rule.singular, &rule.plural, &rule.context}

	for i, slot := range slots {
		slot = strings.TrimSpace(slot)
		if slot == "" {
			continue
		}

		n, err := strconv.Atoi(slot)
		if err != nil || n < 1 {
			return keywordRule{}, fmt.Errorf("keyword %q: bad argument position %q", spec, slot)
		}

		*targets[i] = n
	}

	return rule, nil
}

// msgKey identifies one extracted entry by context, singular msgid and
// optional plural msgid. For non-plural entries, plural is empty.
type msgKey struct {
	ctx    string
	id     string
	plural string
}

type sourceRef struct {
	file string
	line int
}

// translatorsPrefix marks source comments addressed to translators. Only
// these become extracted comments in the template.
const translatorsPrefix = "TRANSLATORS:"

// extractor holds the shared state and context for AST analysis within a
// package.
type extractor struct {
	rules       map[string][]keywordRule
	refs        map[msgKey][]sourceRef
	comments    map[msgKey][]string
	projectRoot string
	searchPaths []string
	excluded    []string
	fset        *token.FileSet
	info        *types.Info
	groupEnds   map[int]*ast.CommentGroup
}

// extractCmd creates the extract command.
func extractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract translatable strings from Go sources into a POT file",
		ArgsUsage: "[package]...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "Output POT path"},
			&cli.StringFlag{Name: "from", Usage: "Existing catalog whose source extraction settings to reuse"},
			&cli.StringSliceFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "Keyword in Name[:singular[,plural[,context]]] notation"},
			&cli.StringFlag{Name: "project", Usage: "Project-Id-Version header value"},
		},
		Action: runExtract,
	}
}

func runExtract(c *cli.Context) error {
	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	keywords := defaultKeywords
	basePath := "."

	var searchPaths, excluded []string

	if from := c.String("from"); from != "" {
		src, err := catalog.Open(from, 0)
		if err != nil {
			return err
		}

		spec := src.SourceCodeSpec()
		if spec == nil {
			return fmt.Errorf("%s: declared source base path does not exist", from)
		}

		basePath = spec.BasePath
		searchPaths = spec.SearchPaths
		excluded = spec.ExcludedPaths

		if len(spec.Keywords) > 0 {
			keywords = spec.Keywords
		}
	}

	if kw := c.StringSlice("keyword"); len(kw) > 0 {
		keywords = kw
	}

	rules := make(map[string][]keywordRule, len(keywords))

	for _, spec := range keywords {
		rule, err := parseKeyword(spec)
		if err != nil {
			return err
		}

		rules[rule.name] = append(rules[rule.name], rule)
	}

	dir, err := filepath.Abs(basePath)
	if err != nil {
		return err
	}

	// References stay relative to the catalog's base path when one drives
	// the run, and to the enclosing module otherwise.
	root := dir
	if c.String("from") == "" {
		root = projectRoot(dir)
	}

	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false, Dir: dir}, patterns...)
	if err != nil {
		return fmt.Errorf("loading packages: %w", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		return errors.New("packages failed to load")
	}

	e := &extractor{
		rules:       rules,
		refs:        map[msgKey][]sourceRef{},
		comments:    map[msgKey][]string{},
		projectRoot: root,
		searchPaths: searchPaths,
		excluded:    excluded,
	}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e.fset = p.Fset
		e.info = p.TypesInfo

		for _, f := range p.Syntax {
			e.groupEnds = commentGroupEnds(p.Fset, f)

			ast.Inspect(f, func(n ast.Node) bool {
				if call, ok := n.(*ast.CallExpr); ok {
					e.handleCall(call)
				}

				return true
			})
		}
	}

	pot, err := buildTemplate(e, c.String("project"))
	if err != nil {
		return err
	}

	outPath := c.String("output")
	if outDir := filepath.Dir(outPath); outDir != "." {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}

	if err := catalog.Save(pot, outPath); err != nil {
		return err
	}

	fmt.Printf("%s: %d strings extracted\n", outPath, len(e.refs))

	return nil
}

// buildTemplate assembles the extracted entries into a POT catalog, sorted
// by context, msgid and plural, with duplicate references collapsed.
func buildTemplate(e *extractor, project string) (*catalog.Catalog, error) {
	id := config.Global.Identity()

	pot, err := catalog.NewCatalog(catalog.TypePOT, catalog.WithTranslatorIdentity(id.Name, id.Email))
	if err != nil {
		return nil, err
	}

	if project != "" {
		pot.Header().Project = project
		pot.Header().UpdateDict()
	}

	keys := make([]msgKey, 0, len(e.refs))
	for k := range e.refs {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ctx != keys[j].ctx {
			return keys[i].ctx < keys[j].ctx
		}

		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}

		return keys[i].plural < keys[j].plural
	})

	for _, k := range keys {
		rs := e.refs[k]
		sort.Slice(rs, func(i, j int) bool {
			if rs[i].file != rs[j].file {
				return rs[i].file < rs[j].file
			}

			return rs[i].line < rs[j].line
		})

		// After sorting by file and line, duplicates are adjacent.
		refs := make([]string, 0, len(rs))

		last := ""

		for _, r := range rs {
			s := fmt.Sprintf("%s:%d", r.file, r.line)
			if s != last {
				refs = append(refs, s)
				last = s
			}
		}

		it := catalog.NewItem(k.id)
		if k.ctx != "" {
			it.SetContext(k.ctx)
		}

		if k.plural != "" {
			it.SetPluralSource(k.plural)
			it.SetTranslations([]string{"", ""})
		}

		it.SetExtractedComments(e.comments[k])
		it.SetReferences(refs)
		pot.AddItem(it)
	}

	return pot, nil
}

// handleCall matches a call against the keyword rules by callee name. The
// first rule whose required arguments all resolve to constant strings wins.
func (e *extractor) handleCall(x *ast.CallExpr) {
	name := calleeName(x.Fun)
	if name == "" {
		return
	}

	for _, rule := range e.rules[name] {
		id, ok := argString(e.info, x.Args, rule.singular)
		if !ok {
			continue
		}

		plural := ""

		if rule.plural > 0 {
			plural, ok = argString(e.info, x.Args, rule.plural)
			if !ok {
				continue
			}
		}

		ctx := ""

		if rule.context > 0 {
			ctx, ok = argString(e.info, x.Args, rule.context)
			if !ok {
				continue
			}
		}

		e.addRef(x.Pos(), msgKey{ctx: ctx, id: id, plural: plural})

		return
	}
}

// calleeName resolves the bare name a call is made under, so both
// gotext.Get(...) and po.Get(...) match a Get keyword. Keyword matching is
// name-based, like xgettext, and does not inspect the receiver type.
func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	}

	return ""
}

// argString evaluates the 1-based call argument at pos to a constant
// string.
func argString(info *types.Info, args []ast.Expr, pos int) (string, bool) {
	if pos < 1 || pos > len(args) {
		return "", false
	}

	return constString(info, args[pos-1])
}

// constString evaluates expr to a constant string if possible using
// types.Info. Handles string literals, const identifiers, and constant
// expressions like "a" + "b". Non-constant expressions return false.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// addRef records a reference to an entry, normalising the file path
// relative to the project root, and picks up a translator comment ending
// on the line above the call.
func (e *extractor) addRef(pos token.Pos, k msgKey) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	file = filepath.ToSlash(file)

	if !e.wantFile(file) {
		return
	}

	e.refs[k] = append(e.refs[k], sourceRef{file: file, line: p.Line})

	if group, ok := e.groupEnds[p.Line-1]; ok {
		e.mergeComments(k, group)
	}
}

// wantFile applies the search path and exclusion prefixes from a
// SourceCodeSpec. An empty search list admits everything.
func (e *extractor) wantFile(file string) bool {
	for _, ex := range e.excluded {
		if underPath(file, ex) {
			return false
		}
	}

	if len(e.searchPaths) == 0 {
		return true
	}

	for _, sp := range e.searchPaths {
		if underPath(file, sp) {
			return true
		}
	}

	return false
}

func underPath(file, prefix string) bool {
	prefix = filepath.ToSlash(filepath.Clean(prefix))
	if prefix == "." {
		return true
	}

	return file == prefix || strings.HasPrefix(file, prefix+"/")
}

func (e *extractor) mergeComments(k msgKey, group *ast.CommentGroup) {
	text := strings.TrimSpace(group.Text())
	if !strings.HasPrefix(text, translatorsPrefix) {
		return
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || slices.Contains(e.comments[k], line) {
			continue
		}

		e.comments[k] = append(e.comments[k], line)
	}
}

// commentGroupEnds indexes a file's comment groups by the line each group
// ends on, so the group directly above a call site can be looked up
// cheaply.
func commentGroupEnds(fset *token.FileSet, f *ast.File) map[int]*ast.CommentGroup {
	ends := make(map[int]*ast.CommentGroup, len(f.Comments))

	for _, g := range f.Comments {
		ends[fset.Position(g.End()).Line] = g
	}

	return ends
}

// projectRoot finds the nearest parent directory containing go.mod, which
// keeps source references stable regardless of the invocation directory.
func projectRoot(start string) string {
	dir := filepath.Clean(start)
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}

		dir = parent
	}
}
