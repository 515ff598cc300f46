package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Notifier handles desktop notifications
type Notifier struct {
	enabled bool
	goos    string
	run     func(name string, args ...string) error
}

// New creates a new notifier
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, goos: runtime.GOOS, run: runCommand}
}

func runCommand(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Notify sends a desktop notification. Platforms without a notifier are
// a silent no-op.
func (n *Notifier) Notify(title, message string) error {
	if !n.enabled {
		return nil
	}

	switch n.goos {
	case "darwin":
		title = strings.ReplaceAll(title, `"`, `\"`)
		message = strings.ReplaceAll(message, `"`, `\"`)
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
		return n.run("osascript", "-e", script)
	case "linux":
		return n.run("notify-send", title, message)
	default:
		return nil
	}
}

// NotifySessionComplete announces that the requirement documents are ready
func (n *Notifier) NotifySessionComplete(projectName string, documents int) error {
	return n.Notify("需求收集完成", fmt.Sprintf("%s：已生成 %d 份文件", projectName, documents))
}

// NotifyDocumentsWritten announces documents saved to disk
func (n *Notifier) NotifyDocumentsWritten(dir string, documents int) error {
	return n.Notify("文件已儲存", fmt.Sprintf("%d 份文件已寫入 %s", documents, dir))
}
