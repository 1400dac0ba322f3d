package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/rivo/tview"
)

// Loader fetches a full entity. *catalog.Service.Lookup satisfies it.
type Loader func(ctx context.Context, kind string, id int) (*discogs.Entity, error)

// Config holds browser configuration options
type Config struct {
	LabelWidth   int           // Maximum display width of a tree label
	FetchTimeout time.Duration // Timeout for each open request
}

// DefaultConfig returns the default browser configuration
func DefaultConfig() Config {
	return Config{
		LabelWidth:   72,
		FetchTimeout: 10 * time.Second,
	}
}

// App is a tree browser over Discogs entities. Object-list fields are
// expanded on demand from the already fetched payload; 'o' re-fetches the
// selected entity in full.
type App struct {
	app    *tview.Application
	tree   *tview.TreeView
	detail *tview.TextView
	status *tview.TextView

	config Config
	load   Loader

	// Guards history, which the fetch goroutine appends to
	mu      sync.Mutex
	history []*tview.TreeNode

	lastDetail string

	ctx        context.Context
	cancelFunc context.CancelFunc
}

// New creates a browser with default config
func New(load Loader) *App {
	return NewWithConfig(DefaultConfig(), load)
}

// NewWithConfig creates a browser with the given config
func NewWithConfig(cfg Config, load Loader) *App {
	a := &App{
		app:    tview.NewApplication(),
		config: cfg,
		load:   load,
	}
	a.setupUI()
	return a
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.tree = tview.NewTreeView().
		SetGraphics(true)
	a.tree.SetBorder(true).
		SetTitle(" Discogs ").
		SetTitleAlign(tview.AlignLeft)

	a.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	a.detail.SetBorder(true).
		SetTitle(" Value ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText(statusHelp)

	// Left: tree, right: value of the selected node
	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.tree, 0, 3, true).
		AddItem(a.detail, 0, 2, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(a.status, 1, 1, false)

	a.tree.SetSelectedFunc(func(node *tview.TreeNode) {
		if err := toggle(node, a.config.LabelWidth); err != nil {
			a.setStatus(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
		}
	})
	a.tree.SetChangedFunc(a.showDetail)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

const statusHelp = "[gray]enter:expand  o:open  b:back  q:quit[-]"

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case 'o', 'O':
		a.openSelected()
		return nil
	case 'b', 'B':
		a.back()
		return nil
	}
	return event
}

// Run fetches the starting entity and blocks until the user quits
func (a *App) Run(ctx context.Context, kind string, id int) error {
	a.ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	fetchCtx, cancel := context.WithTimeout(a.ctx, a.config.FetchTimeout)
	root, err := a.fetchRoot(fetchCtx, kind, id)
	cancel()
	if err != nil {
		return err
	}
	a.setRoot(root)

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func (a *App) fetchRoot(ctx context.Context, kind string, id int) (*tview.TreeNode, error) {
	e, err := a.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	root := newEntityNode(Node{Label: e.String(), Entity: e}, a.config.LabelWidth)
	if err := expand(root, a.config.LabelWidth); err != nil {
		return nil, err
	}
	root.SetColor(tcell.ColorYellow)
	return root, nil
}

func (a *App) setRoot(root *tview.TreeNode) {
	a.tree.SetRoot(root).SetCurrentNode(root)
	a.showDetail(root)
}

// openSelected fetches the selected entity by ID and makes it the root
func (a *App) openSelected() {
	node := a.tree.GetCurrentNode()
	if node == nil {
		return
	}
	ref, ok := node.GetReference().(Node)
	if !ok || ref.Entity == nil {
		return
	}
	kind, id, ok := catalog.Fetchable(ref.Entity)
	if !ok {
		a.setStatus("[yellow]Nothing to open here[-]")
		return
	}

	a.setStatus(fmt.Sprintf("[gray]Loading %s %d...[-]", kind, id))
	prev := a.tree.GetRoot()

	go func() {
		ctx, cancel := context.WithTimeout(a.ctx, a.config.FetchTimeout)
		defer cancel()

		root, err := a.fetchRoot(ctx, kind, id)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.setStatus(fmt.Sprintf("[red]%s[-]", tview.Escape(err.Error())))
				return
			}
			a.mu.Lock()
			a.history = append(a.history, prev)
			a.mu.Unlock()
			a.setRoot(root)
			a.setStatus(statusHelp)
		})
	}()
}

// back restores the previous root
func (a *App) back() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.history) == 0 {
		return
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	a.setRoot(prev)
}

func (a *App) showDetail(node *tview.TreeNode) {
	if node == nil {
		return
	}
	ref, ok := node.GetReference().(Node)
	if !ok {
		return
	}
	text := tview.Escape(Detail(ref))
	// Skip redundant redraws
	if text == a.lastDetail {
		return
	}
	a.lastDetail = text
	a.detail.SetText(text).ScrollToBeginning()
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

// newEntityNode creates a collapsed tree node for n
func newEntityNode(n Node, width int) *tview.TreeNode {
	node := tview.NewTreeNode(Truncate(n.Label, width)).
		SetReference(n).
		SetSelectable(true)
	if n.Expandable() {
		node.SetColor(tcell.ColorGreen)
	}
	return node
}

// expand materializes the children of a node once
func expand(node *tview.TreeNode, width int) error {
	if len(node.GetChildren()) > 0 {
		return nil
	}
	ref, ok := node.GetReference().(Node)
	if !ok {
		return nil
	}
	children, err := Children(ref)
	if err != nil {
		return err
	}
	for _, c := range children {
		node.AddChild(newEntityNode(c, width))
	}
	node.SetExpanded(true)
	return nil
}

// toggle expands a collapsed node, loading children if needed, or
// collapses an expanded one
func toggle(node *tview.TreeNode, width int) error {
	if len(node.GetChildren()) == 0 {
		return expand(node, width)
	}
	node.SetExpanded(!node.IsExpanded())
	return nil
}
