// ABOUTME: Reads an image from the system clipboard as an alternative input source
// ABOUTME: Shells out per OS (osascript/pngpaste, xclip/wl-paste, powershell); first success wins

package image

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

const macClipboardScript = `tell application "System Events"
    set the clipboard_type to type of (the clipboard)
    if the clipboard_type is «class PNGf» or the clipboard_type is «class JPEG» or the clipboard_type is «class TIFF» then
        get the clipboard as «class PNGf»
    else
        error "No image in clipboard"
    end if
end tell`

const windowsClipboardScript = `Add-Type -AssemblyName System.Windows.Forms;
$bmp = [System.Windows.Forms.Clipboard]::GetImage();
if ($bmp -ne $null) {
    $ms = New-Object System.IO.MemoryStream;
    $bmp.Save($ms, [System.Drawing.Imaging.ImageFormat]::Png);
    $out = [Console]::OpenStandardOutput();
    $out.Write($ms.ToArray(), 0, $ms.Length);
}`

// errNoClipboardImage is returned when every helper ran but none produced data.
var errNoClipboardImage = errors.New("no image data in clipboard")

// clipboardCommands lists the helper invocations tried for goos, in order.
func clipboardCommands(goos string) [][]string {
	switch goos {
	case "darwin":
		return [][]string{
			{"osascript", "-e", macClipboardScript},
			{"pngpaste", "-"},
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		return [][]string{
			{"xclip", "-selection", "clipboard", "-t", "image/png", "-o"},
			{"wl-paste", "--type", "image/png"},
		}
	case "windows":
		return [][]string{
			{"powershell", "-NoProfile", "-Command", windowsClipboardScript},
		}
	default:
		return nil
	}
}

// Clipboard reads image bytes from the system clipboard.
func Clipboard(ctx context.Context) ([]byte, error) {
	cmds := clipboardCommands(runtime.GOOS)
	if len(cmds) == 0 {
		return nil, fmt.Errorf("clipboard images unsupported on %s", runtime.GOOS)
	}
	return firstOutput(ctx, cmds)
}

// firstOutput runs cmds in order and returns the first non-empty stdout.
func firstOutput(ctx context.Context, cmds [][]string) ([]byte, error) {
	var lastErr error
	for _, argv := range cmds {
		out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).Output()
		if err != nil {
			lastErr = err
			continue
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("reading clipboard image: %w", lastErr)
	}
	return nil, errNoClipboardImage
}
