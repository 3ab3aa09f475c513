package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/frugurt-lang/frugurt/frugurt"
)

const (
	completionKindVariable = 6
	completionKindClass    = 7
	completionKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// nullResult is sent for requests that succeed without a value. A nil
// Result would be dropped by omitempty, leaving neither result nor error.
var nullResult = json.RawMessage("null")

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspDidCloseParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	logger *slog.Logger
	docs   map[string]string
}

func newLSPServer(r io.Reader, w io.Writer, logger *slog.Logger) *lspServer {
	return &lspServer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		logger: logger,
		docs:   make(map[string]string),
	}
}

func runLSP() error {
	return newLSPServer(os.Stdin, os.Stdout, newLogger(false)).serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.logger.Warn("dropping malformed message", "err", err)
			continue
		}

		messages := s.handleMessage(incoming)
		for _, msg := range messages {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
					"serverInfo": map[string]any{
						"name": "frugurt-lsp",
					},
				},
			},
		}
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nullResult}}
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			s.logger.Warn("invalid didOpen params", "err", err)
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			s.logger.Warn("invalid didChange params", "err", err)
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspDidCloseParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		_ = json.Unmarshal(incoming.Params, &params)
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(s.docs[params.TextDocument.URI]),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nullResult},
			}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": fmt.Sprintf("`%s`\n\nFrugurt %s", word, classifyWord(source, word)),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		s.logger.Debug("unsupported method", "method", incoming.Method)
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(source),
		},
	}
}

// diagnosticsForSource parses in recovery mode so every problem in the
// document is reported at once.
func diagnosticsForSource(source string) []map[string]any {
	_, err := frugurt.Config{Recover: true}.Parse(source)
	if err == nil {
		return []map[string]any{}
	}

	var diags frugurt.Diagnostics
	if !errors.As(err, &diags) {
		return []map[string]any{newDiagnostic(lspPosition{}, lspPosition{Character: 1}, err.Error())}
	}

	lines := strings.Split(source, "\n")
	out := make([]map[string]any, 0, len(diags))
	for _, d := range diags {
		start := toLSPPosition(lines, d.Span.Start)
		end := toLSPPosition(lines, d.Span.End)
		if end.Line < start.Line || (end.Line == start.Line && end.Character <= start.Character) {
			end = lspPosition{Line: start.Line, Character: start.Character + 1}
		}
		out = append(out, newDiagnostic(start, end, fmt.Sprintf("%s error: %s", d.Kind, d.Message)))
	}
	return out
}

type lspPosition struct {
	Line      int
	Character int
}

// toLSPPosition converts a 1-based rune column into a 0-based UTF-16 offset.
func toLSPPosition(lines []string, pos frugurt.Position) lspPosition {
	line := max(0, pos.Line-1)
	if line >= len(lines) {
		return lspPosition{Line: line}
	}
	runes := []rune(lines[line])
	units := 0
	for i := 0; i < pos.Column-1 && i < len(runes); i++ {
		units += utf16.RuneLen(runes[i])
	}
	if pos.Column-1 > len(runes) {
		units += pos.Column - 1 - len(runes)
	}
	return lspPosition{Line: line, Character: units}
}

func newDiagnostic(start, end lspPosition, message string) map[string]any {
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      start.Line,
				"character": start.Character,
			},
			"end": map[string]any{
				"line":      end.Line,
				"character": end.Character,
			},
		},
		"severity": 1,
		"source":   "frugurt-lsp",
		"message":  message,
	}
}

// completionItems offers every keyword plus the names declared in source,
// sorted by label.
func completionItems(source string) []map[string]any {
	kinds := make(map[string]int, len(frugurt.Keywords))
	for name, kind := range declaredNames(source) {
		kinds[name] = kind
	}
	for _, keyword := range frugurt.Keywords {
		kinds[keyword] = completionKindKeyword
	}

	labels := make([]string, 0, len(kinds))
	for label := range kinds {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		kind := kinds[label]
		detail := "variable"
		switch kind {
		case completionKindKeyword:
			detail = "keyword"
		case completionKindClass:
			detail = "type"
		}
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kind,
			"detail": detail,
		})
	}
	return items
}

// declaredNames collects let bindings, parameters and type names. Broken
// documents contribute whatever recovery managed to parse.
func declaredNames(source string) map[string]int {
	names := make(map[string]int)
	if source == "" {
		return names
	}
	file, _ := frugurt.Config{Recover: true}.Parse(source)
	if file == nil {
		return names
	}
	frugurt.Walk(file, func(n frugurt.Node) bool {
		switch n := n.(type) {
		case *frugurt.LetStmt:
			names[n.Name] = completionKindVariable
		case *frugurt.Param:
			names[n.Name] = completionKindVariable
		case *frugurt.TypeStmt:
			names[n.Name] = completionKindClass
		}
		return true
	})
	return names
}

func classifyWord(source, word string) string {
	if frugurt.IsReserved(word) {
		return "keyword"
	}
	for _, keyword := range frugurt.Keywords {
		if keyword == word {
			return "contextual keyword"
		}
	}
	if source != "" {
		if file, _ := (frugurt.Config{Recover: true}).Parse(source); file != nil {
			kind := ""
			frugurt.Walk(file, func(n frugurt.Node) bool {
				if decl, ok := n.(*frugurt.TypeStmt); ok && decl.Name == word && kind == "" {
					kind = string(decl.Kind)
				}
				return kind == ""
			})
			if kind != "" {
				return kind + " type"
			}
		}
	}
	return "symbol"
}

// wordAtPosition finds the identifier under an LSP position, whose
// character offset counts UTF-16 code units.
func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}

	cursor := 0
	for units := 0; cursor < len(runes) && units < character; cursor++ {
		units += utf16.RuneLen(runes[cursor])
	}
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
