package schedule

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/tlindfors/fieldsched/fields"
	"github.com/tlindfors/fieldsched/layout"
	"github.com/tlindfors/fieldsched/model"
)

// timeRe matches a time slot: two HH.MM groups separated by a hyphen,
// e.g. "08.30 - 08.55". A row whose leading fragment does not match
// produces no record.
var timeRe = regexp.MustCompile(`^\d{2}\.\d{2}\s*-\s*\d{2}\.\d{2}$`)

// Config holds engine configuration.
type Config struct {
	// Catalogue drives field detection and year inference; nil uses the
	// built-in catalogue
	Catalogue *fields.Catalogue

	// Line configures line grouping
	Line layout.LineConfig

	// RightEdgeTolerance is the slack allowed left of the right block's
	// StartX when selecting its row fragments
	RightEdgeTolerance float64

	// Logger receives soft-warning and debug logs; nil means no logging
	Logger *zap.Logger
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Line:               layout.DefaultLineConfig(),
		RightEdgeTolerance: 0.3,
	}
}

// Engine extracts a field schedule from normalized fragment pages.
type Engine struct {
	cat      *fields.Catalogue
	detector *fields.Detector
	grouper  *layout.LineGrouper
	config   Config
	logger   *zap.Logger
}

// NewEngine creates an engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(DefaultConfig())
}

// NewEngineWithConfig creates an engine with custom configuration.
func NewEngineWithConfig(config Config) *Engine {
	cat := config.Catalogue
	if cat == nil {
		cat = fields.DefaultCatalogue()
	}
	if config.RightEdgeTolerance <= 0 {
		config.RightEdgeTolerance = DefaultConfig().RightEdgeTolerance
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cat:      cat,
		detector: fields.NewDetector(cat),
		grouper:  layout.NewLineGrouperWithConfig(config.Line),
		config:   config,
		logger:   logger,
	}
}

// Extract processes all pages in order and returns the assembled schedule
// plus any warnings. Games are ordered page, then line, then left block
// before right block. The document date is read once from the first page.
func (e *Engine) Extract(pages []model.PageFragments, sourceFile string) (*model.Schedule, []Warning) {
	games := make([]model.GameRecord, 0)
	var warnings []Warning

	var date *string
	if len(pages) > 0 {
		if d, ok := FindDocumentDate(pages[0].Fragments); ok {
			date = &d
		}
	}

	for _, page := range pages {
		pageGames := e.extractPage(page, &warnings)
		games = append(games, pageGames...)
	}

	e.logger.Info("extraction complete",
		zap.Int("pages", len(pages)),
		zap.Int("games", len(games)),
		zap.Int("warnings", len(warnings)))

	return &model.Schedule{
		DocumentDate: date,
		Games:        games,
		SourceFile:   sourceFile,
	}, warnings
}

// pageState is the two-slot block state machine for one page pass. A
// field-name line replaces both slots; the slots persist across row lines
// until the next field-name line or end of page.
type pageState struct {
	left  *model.FieldBlock
	right *model.FieldBlock

	// paired is true when left and right name a known sibling pair
	paired   bool
	pairMidX float64

	// rightTimes tracks time slots already emitted for the right block,
	// for the sibling row synthesis guarantee
	rightTimes map[string]bool

	// pending holds a detected field-name line whose header line has not
	// been consumed yet
	pending *fields.Detection
}

func (s *pageState) reset(det fields.Detection) {
	s.left = nil
	s.right = nil
	s.paired = false
	s.pairMidX = 0
	s.rightTimes = make(map[string]bool)
	s.pending = &det
}

// extractPage runs the per-line state machine over one page.
func (e *Engine) extractPage(page model.PageFragments, warnings *[]Warning) []model.GameRecord {
	lines := e.grouper.Group(page.Fragments)
	st := &pageState{rightTimes: make(map[string]bool)}
	var games []model.GameRecord

	for _, line := range lines {
		if st.pending != nil {
			e.resolveHeaders(page, line, st, warnings)
			continue
		}

		det := e.detector.Detect(line)
		switch det.Kind {
		case fields.NoField:
			games = append(games, e.extractRows(page, line, st)...)
		case fields.SingleField:
			e.warnUnresolvedSibling(page.Number, det.Left, warnings)
			st.reset(det)
		case fields.PairedFields:
			if det.Synthesized {
				e.logger.Debug("synthesized missing sibling field",
					zap.Int("page", page.Number),
					zap.String("left", det.Left.Text),
					zap.String("right", det.Right.Text))
			}
			st.reset(det)
		}
	}

	return games
}

// warnUnresolvedSibling records the pattern-ambiguity case: a field name
// that looks like one half of a pair, with no sibling found and no
// synthesis applicable. The block proceeds with one side active.
func (e *Engine) warnUnresolvedSibling(pageNum int, cand model.TextFragment, warnings *[]Warning) {
	zone, ok := fields.ParseZone(cand.Text)
	if !ok {
		return
	}
	if _, paired := e.cat.PairedLetter(zone.Letter); !paired {
		return
	}
	e.warn(warnings, pageNum, "field %q: expected sibling column not found", strings.TrimSpace(cand.Text))
}

// resolveHeaders consumes the line below a field-name line as the header
// line and instantiates the left/right blocks. A side with fewer than
// three header fragments stays inactive and produces no rows.
func (e *Engine) resolveHeaders(page model.PageFragments, line layout.Line, st *pageState, warnings *[]Warning) {
	det := *st.pending
	st.pending = nil
	midX := page.MidX()

	var leftHdr []model.TextFragment
	for _, f := range line.Fragments {
		if f.X < midX {
			leftHdr = append(leftHdr, f)
		}
	}
	if len(leftHdr) >= 3 {
		st.left = &model.FieldBlock{
			Name:         strings.TrimSpace(det.Left.Text),
			GameDuration: leftHdr[0].Text,
			GameType:     leftHdr[1].Text,
			Year:         leftHdr[2].Text,
			StartX:       det.Left.X,
		}
	} else {
		e.warn(warnings, page.Number, "field %q: header line too sparse (%d fragments)",
			strings.TrimSpace(det.Left.Text), len(leftHdr))
	}

	if det.Kind == fields.PairedFields {
		split := det.Right.X
		var rightHdr []model.TextFragment
		for _, f := range line.Fragments {
			if f.X >= split {
				rightHdr = append(rightHdr, f)
			}
		}
		if len(rightHdr) >= 3 {
			st.right = &model.FieldBlock{
				Name:         strings.TrimSpace(det.Right.Text),
				GameDuration: rightHdr[0].Text,
				GameType:     rightHdr[1].Text,
				Year:         rightHdr[2].Text,
				StartX:       det.Right.X,
			}
		} else {
			e.warn(warnings, page.Number, "field %q: header line too sparse (%d fragments)",
				strings.TrimSpace(det.Right.Text), len(rightHdr))
		}
	}

	if st.left != nil && st.right != nil && e.cat.ArePairedSiblings(st.left.Name, st.right.Name) {
		st.paired = true
		st.pairMidX = (st.left.StartX + st.right.StartX) / 2
	}
}

// parsedRow is one recognized game row before block attribution.
type parsedRow struct {
	time  string
	timeX float64
	team1 string
	team2 string
}

// extractRows extracts zero or more game records from a row line against
// the currently active blocks, applying coordinate reassignment and
// sibling row synthesis for paired blocks.
func (e *Engine) extractRows(page model.PageFragments, line layout.Line, st *pageState) []model.GameRecord {
	if st.left == nil && st.right == nil {
		return nil
	}

	midX := page.MidX()
	var out []model.GameRecord

	var leftRow *parsedRow
	leftReassigned := false
	if st.left != nil {
		boundary := midX
		if st.right != nil {
			boundary = st.right.StartX
		}
		sel := selectRange(line.Fragments, st.left.StartX, boundary)
		if row, ok := parseRow(sel); ok {
			block := st.left
			// A row captured in the left x-range can visually belong to
			// the sibling column; the time fragment's position decides.
			if st.paired && row.timeX > st.pairMidX {
				block = st.right
				leftReassigned = true
				st.rightTimes[row.time] = true
				e.logger.Debug("row reassigned to sibling block",
					zap.Int("page", page.Number),
					zap.String("time", row.time),
					zap.String("field", block.Name))
			}
			out = append(out, e.record(block, row))
			leftRow = &row
		}
	}

	if st.right != nil {
		sel := selectFrom(line.Fragments, st.right.StartX-e.config.RightEdgeTolerance)
		if row, ok := parseRow(sel); ok {
			st.rightTimes[row.time] = true
			out = append(out, e.record(st.right, row))
		}
	}

	// Sibling row synthesis: a paired left field's time slot must never be
	// silently missing from the right field.
	if st.paired && leftRow != nil && !leftReassigned && !st.rightTimes[leftRow.time] {
		team1, team2 := teamsPast(line.Fragments, st.pairMidX)
		synth := parsedRow{time: leftRow.time, team1: team1, team2: team2}
		st.rightTimes[synth.time] = true
		out = append(out, e.record(st.right, synth))
		e.logger.Debug("synthesized sibling row",
			zap.Int("page", page.Number),
			zap.String("time", synth.time),
			zap.String("field", st.right.Name))
	}

	return out
}

// record attributes a parsed row to a block, applying team-name year
// inference for this record only.
func (e *Engine) record(block *model.FieldBlock, row parsedRow) model.GameRecord {
	year := block.Year
	if inferred := InferYear(e.cat.YearMarkers, row.team1, row.team2); inferred != "" {
		year = inferred
	}
	return model.GameRecord{
		Field:        block.Name,
		GameDuration: block.GameDuration,
		GameType:     block.GameType,
		Year:         year,
		Time:         row.time,
		Team1:        row.team1,
		Team2:        row.team2,
	}
}

// parseRow recognizes a game row in a block's x-sorted fragment selection:
// a leading time-slot fragment followed by up to two non-time team names.
// Missing teams are empty strings, never an error.
func parseRow(sel []model.TextFragment) (parsedRow, bool) {
	if len(sel) == 0 {
		return parsedRow{}, false
	}
	first := strings.TrimSpace(sel[0].Text)
	if !timeRe.MatchString(first) {
		return parsedRow{}, false
	}
	row := parsedRow{time: first, timeX: sel[0].X}
	teams := make([]string, 0, 2)
	for _, f := range sel[1:] {
		text := strings.TrimSpace(f.Text)
		if timeRe.MatchString(text) {
			continue
		}
		teams = append(teams, text)
		if len(teams) == 2 {
			break
		}
	}
	if len(teams) > 0 {
		row.team1 = teams[0]
	}
	if len(teams) > 1 {
		row.team2 = teams[1]
	}
	return row, true
}

// selectRange returns fragments with lo <= X < hi, preserving x order.
func selectRange(fragments []model.TextFragment, lo, hi float64) []model.TextFragment {
	var sel []model.TextFragment
	for _, f := range fragments {
		if f.X >= lo && f.X < hi {
			sel = append(sel, f)
		}
	}
	return sel
}

// selectFrom returns fragments with X >= lo, preserving x order.
func selectFrom(fragments []model.TextFragment, lo float64) []model.TextFragment {
	var sel []model.TextFragment
	for _, f := range fragments {
		if f.X >= lo {
			sel = append(sel, f)
		}
	}
	return sel
}

// teamsPast returns up to two non-time fragment texts past the pair
// midpoint, for synthesized sibling rows.
func teamsPast(fragments []model.TextFragment, midX float64) (string, string) {
	teams := make([]string, 0, 2)
	for _, f := range fragments {
		if f.X <= midX {
			continue
		}
		text := strings.TrimSpace(f.Text)
		if timeRe.MatchString(text) {
			continue
		}
		teams = append(teams, text)
		if len(teams) == 2 {
			break
		}
	}
	team1, team2 := "", ""
	if len(teams) > 0 {
		team1 = teams[0]
	}
	if len(teams) > 1 {
		team2 = teams[1]
	}
	return team1, team2
}

// warn records a warning and logs it.
func (e *Engine) warn(warnings *[]Warning, page int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	*warnings = append(*warnings, Warning{Page: page, Message: msg})
	e.logger.Warn(msg, zap.Int("page", page))
}
