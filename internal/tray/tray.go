package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// Options wires the tray menu to the application.
type Options struct {
	// MonitorURL enables the "Open Monitor" item when set.
	MonitorURL string
	// SetPaused is called when "Pause output" is toggled.
	SetPaused func(bool)
	// Shutdown is called once when "Exit" is clicked.
	Shutdown func()
}

// Tray manages the system tray icon and menu
type Tray struct {
	opts         Options
	once         sync.Once
	shuttingDown atomic.Bool
	menuPause    *systray.MenuItem
	menuOpen     *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a new Tray instance
func New(opts Options) *Tray {
	return &Tray{opts: opts}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	if t.shuttingDown.CompareAndSwap(false, true) {
		systray.Quit()
	}
}

func (t *Tray) onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("PadMouse")
	systray.SetTooltip("PadMouse - gamepad mouse")

	t.menuPause = systray.AddMenuItemCheckbox("Pause output", "Stop sending keys and pointer moves", false)
	if t.opts.MonitorURL != "" {
		t.menuOpen = systray.AddMenuItem("Open Monitor", "Open the live monitor page")
	}
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	log.Println("System tray initialized")
}

func (t *Tray) handleMenuClicks() {
	// A nil channel never fires, so the select works without the monitor item.
	var openCh chan struct{}
	if t.menuOpen != nil {
		openCh = t.menuOpen.ClickedCh
	}

	for {
		select {
		case <-t.menuPause.ClickedCh:
			if t.menuPause.Checked() {
				t.menuPause.Uncheck()
			} else {
				t.menuPause.Check()
			}
			if t.opts.SetPaused != nil {
				t.opts.SetPaused(t.menuPause.Checked())
			}
		case <-openCh:
			if !t.shuttingDown.Load() {
				openBrowser(t.opts.MonitorURL)
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.opts.Shutdown != nil {
					t.once.Do(t.opts.Shutdown)
				}
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
