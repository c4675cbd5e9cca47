package gtp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tesuji/ai"
	"tesuji/board"
	"tesuji/eval"
	"tesuji/game"
	"tesuji/sgf"
)

// Engine identity reported by the name and version commands.
const (
	EngineName      = "tesuji"
	EngineVersion   = "0.1.0"
	protocolVersion = "2"
)

// komi outside this open interval is rejected.
const komiBound = 360

var errQuit = errors.New("quit")

type handler func(args []string) (string, error)

// Server owns one session and answers GTP commands over a line
// stream. Commands are processed strictly one at a time.
type Server struct {
	session  *game.Session
	gen      *ai.Generator
	log      *zap.Logger
	commands map[string]handler
}

// NewServer wires a session and move generator behind the command
// table.
func NewServer(session *game.Session, gen *ai.Generator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{session: session, gen: gen, log: log}
	s.commands = map[string]handler{
		"protocol_version": s.cmdProtocolVersion,
		"name":             s.cmdName,
		"version":          s.cmdVersion,
		"known_command":    s.cmdKnownCommand,
		"list_commands":    s.cmdListCommands,
		"quit":             s.cmdQuit,
		"boardsize":        s.cmdBoardsize,
		"clear_board":      s.cmdClearBoard,
		"komi":             s.cmdKomi,
		"get_komi":         s.cmdGetKomi,
		"play":             s.cmdPlay,
		"genmove":          s.cmdGenmove,
		"undo":             s.cmdUndo,
		"captures":         s.cmdCaptures,
		"final_score":      s.cmdFinalScore,
		"showboard":        s.cmdShowboard,
		"list_stones":      s.cmdListStones,
		"is_legal":         s.cmdIsLegal,
		"countlib":         s.cmdCountlib,
		"findlib":          s.cmdFindlib,
		"eye_data":         s.cmdEyeData,
		"ladder_attack":    s.cmdLadderAttack,
		"loadsgf":          s.cmdLoadSGF,
		"printsgf":         s.cmdPrintSGF,
		"time_settings":    s.cmdTimeSettings,
	}
	return s
}

// Run reads commands from r until EOF or quit, writing one framed
// response per command. Empty lines and # comments are skipped; an
// optional numeric id before the command name is echoed back.
func (s *Server) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		id := ""
		if _, err := strconv.Atoi(fields[0]); err == nil {
			id = fields[0]
			fields = fields[1:]
		}
		if len(fields) == 0 {
			writeResponse(out, '?', id, "syntax error")
			continue
		}

		name := strings.ToLower(fields[0])
		args := fields[1:]
		cmd, ok := s.commands[name]
		if !ok {
			s.log.Debug("unknown command", zap.String("command", name))
			writeResponse(out, '?', id, "unknown command")
			continue
		}

		payload, err := cmd(args)
		if errors.Is(err, errQuit) {
			writeResponse(out, '=', id, "")
			return out.Flush()
		}
		if err != nil {
			s.log.Debug("command failed",
				zap.String("command", name),
				zap.Error(err))
			writeResponse(out, '?', id, err.Error())
			continue
		}
		writeResponse(out, '=', id, payload)
	}
	out.Flush()
	return scanner.Err()
}

// writeResponse frames one GTP response: status byte, optional id,
// optional payload, blank-line terminator.
func writeResponse(w *bufio.Writer, status byte, id, payload string) {
	w.WriteByte(status)
	w.WriteString(id)
	if payload != "" {
		w.WriteByte(' ')
		w.WriteString(payload)
	}
	w.WriteString("\n\n")
	w.Flush()
}

func (s *Server) cmdProtocolVersion([]string) (string, error) { return protocolVersion, nil }
func (s *Server) cmdName([]string) (string, error)            { return EngineName, nil }
func (s *Server) cmdVersion([]string) (string, error)         { return EngineVersion, nil }
func (s *Server) cmdQuit([]string) (string, error)            { return "", errQuit }

func (s *Server) cmdKnownCommand(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	if _, ok := s.commands[strings.ToLower(args[0])]; ok {
		return "true", nil
	}
	return "false", nil
}

func (s *Server) cmdListCommands([]string) (string, error) {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), nil
}

func (s *Server) cmdBoardsize(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	if err := s.session.SetBoardSize(n); err != nil {
		return "", errors.New("unacceptable size")
	}
	s.log.Info("board size set", zap.Int("size", n))
	return "", nil
}

func (s *Server) cmdClearBoard([]string) (string, error) {
	s.session.Clear()
	return "", nil
}

func (s *Server) cmdKomi(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	k, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", errors.New("syntax error")
	}
	if k <= -komiBound || k >= komiBound {
		return "", errors.New("komi out of range")
	}
	s.session.SetKomi(k)
	return "", nil
}

func (s *Server) cmdGetKomi([]string) (string, error) {
	return strconv.FormatFloat(s.session.Komi(), 'f', -1, 64), nil
}

func (s *Server) cmdPlay(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("syntax error")
	}
	c, err := ParseColor(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	p, pass, err := ParsePoint(args[1], s.session.Board().Size())
	if err != nil {
		return "", errors.New("syntax error")
	}
	if pass {
		s.session.Pass(c)
		return "", nil
	}
	if err := s.session.Play(c, p); err != nil {
		s.log.Debug("illegal move",
			zap.String("color", c.String()),
			zap.String("vertex", args[1]),
			zap.Error(err))
		return "", errors.New("illegal move")
	}
	return "", nil
}

func (s *Server) cmdGenmove(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	c, err := ParseColor(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	p, ok := s.gen.Generate(s.session.Board(), c)
	if !ok {
		s.session.Pass(c)
		s.log.Info("generated move", zap.String("color", c.String()), zap.String("vertex", "pass"))
		return "pass", nil
	}
	if err := s.session.Play(c, p); err != nil {
		// The generator only proposes legal moves; a failure here
		// means its view of the board is stale.
		return "", fmt.Errorf("internal error: %v", err)
	}
	vertex := FormatPoint(p)
	s.log.Info("generated move", zap.String("color", c.String()), zap.String("vertex", vertex))
	return vertex, nil
}

func (s *Server) cmdUndo([]string) (string, error) {
	if err := s.session.Undo(); err != nil {
		return "", errors.New("cannot undo")
	}
	return "", nil
}

func (s *Server) cmdCaptures(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	c, err := ParseColor(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	return strconv.Itoa(s.session.Board().Captured(c)), nil
}

func (s *Server) cmdFinalScore([]string) (string, error) {
	return eval.FormatScore(s.session.FinalScore()), nil
}

func (s *Server) cmdShowboard([]string) (string, error) {
	return s.session.Board().String(), nil
}

func (s *Server) cmdListStones(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	c, err := ParseColor(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	stones := s.session.Board().Stones(c)
	vertices := make([]string, len(stones))
	for i, p := range stones {
		vertices[i] = FormatPoint(p)
	}
	return strings.Join(vertices, " "), nil
}

func (s *Server) cmdIsLegal(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("syntax error")
	}
	c, err := ParseColor(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	p, pass, err := ParsePoint(args[1], s.session.Board().Size())
	if err != nil {
		return "", errors.New("syntax error")
	}
	if pass || s.session.Board().Legal(c, p) == board.MoveLegal {
		return "1", nil
	}
	return "0", nil
}

func (s *Server) cmdCountlib(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	p, pass, err := ParsePoint(args[0], s.session.Board().Size())
	if err != nil || pass {
		return "", errors.New("syntax error")
	}
	n, err := s.session.Board().LibertyCount(p)
	if err != nil {
		return "", errors.New("vertex is empty")
	}
	return strconv.Itoa(n), nil
}

func (s *Server) cmdFindlib(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return "", errors.New("syntax error")
	}
	reps := s.session.Board().GroupsWithLibertyCount(n)
	vertices := make([]string, len(reps))
	for i, p := range reps {
		vertices[i] = FormatPoint(p)
	}
	return strings.Join(vertices, " "), nil
}

func (s *Server) cmdEyeData(args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("syntax error")
	}
	c, err := ParseColor(args[0])
	if err != nil {
		return "", errors.New("syntax error")
	}
	p, pass, err := ParsePoint(args[1], s.session.Board().Size())
	if err != nil || pass {
		return "", errors.New("syntax error")
	}
	data, err := eval.EyeShape(s.session.Board(), c, p)
	if err != nil {
		return "", errors.New("vertex is not empty")
	}
	return fmt.Sprintf("origin: %s\ncolor: %s\nsize: %d\nkind: %s",
		FormatPoint(data.Origin), data.Color, data.Size, data.Kind), nil
}

func (s *Server) cmdLadderAttack(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	p, pass, err := ParsePoint(args[0], s.session.Board().Size())
	if err != nil || pass {
		return "", errors.New("syntax error")
	}
	outcome, capture, err := eval.Ladder(s.session.Board(), p, s.gen.LadderDepth)
	if err != nil {
		return "", errors.New("stone is not in atari")
	}
	if outcome == eval.LadderCaptured {
		return "captured " + FormatPoint(capture), nil
	}
	return "escaped", nil
}

func (s *Server) cmdLoadSGF(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", errors.New("cannot open file")
	}
	snap, err := sgf.Decode(data)
	if err != nil {
		return "", errors.New("cannot parse file")
	}
	if err := s.session.Restore(snap); err != nil {
		return "", errors.New("cannot replay file")
	}
	s.log.Info("loaded sgf",
		zap.String("file", args[0]),
		zap.Int("moves", s.session.MoveCount()))
	return "", nil
}

func (s *Server) cmdPrintSGF(args []string) (string, error) {
	text := sgf.Encode(s.session.Snapshot())
	if len(args) == 0 {
		return string(text), nil
	}
	if len(args) != 1 {
		return "", errors.New("syntax error")
	}
	if err := os.WriteFile(args[0], text, 0o644); err != nil {
		return "", errors.New("cannot write file")
	}
	return "", nil
}

// Time control is out of scope; the command is accepted so clients
// that always send it keep working.
func (s *Server) cmdTimeSettings([]string) (string, error) { return "", nil }
