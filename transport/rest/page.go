package rest

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rocketscienceinc/tictactoe-solo/internal/render"
)

const pageTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
{{if .ComputerThinking}}<meta http-equiv="refresh" content="1">{{end}}
<style>
  .board { display: grid; grid-template-columns: repeat(3, 100px); gap: 6px; }
  .cell { width: 100px; height: 100px; border: 2px solid #343a40; display: flex; align-items: center; justify-content: center; }
  .cell form, .cell button { width: 100%; height: 100%; margin: 0; }
  .cell button { background: none; border: none; cursor: pointer; }
  .banner { font-size: 1.5em; margin: 12px 0; }
</style>
</head>
<body>
<h1>Tic-Tac-Toe</h1>
<div class="board" id="board" data-round="{{.RoundID}}">
{{range .Cells}}
  <div class="cell" id="cell-{{.Index}}">
  {{if .Image}}<img src="{{.Image}}" alt="{{.Mark}}" width="80" height="80">
  {{else if .Playable}}<form action="/cells/{{.Index}}" method="post"><button type="submit" aria-label="cell {{.Index}}"></button></form>
  {{end}}
  </div>
{{end}}
</div>
{{if .Banner}}<div class="banner" id="banner">{{.Banner}}</div>{{end}}
{{if .ShowNewGame}}<form action="/new" method="post"><button type="submit" id="new-game">New Game</button></form>{{end}}
</body>
</html>
`

type page struct {
	tpl *template.Template
}

func newPage() *page {
	return &page{
		tpl: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

func (that *page) render(view render.View) ([]byte, error) {
	var buf bytes.Buffer

	if err := that.tpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
