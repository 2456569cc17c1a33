package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser 打开系统默认浏览器，主方式失败时尝试备选方式
func OpenBrowser(url string) error {
	switch runtime.GOOS {
	case "windows":
		// rundll32 在 Windows 7+ 上比 cmd /c start 更稳定
		if err := exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start(); err == nil {
			return nil
		}
		return exec.Command("explorer", url).Start()
	case "darwin":
		return exec.Command("open", url).Start()
	default:
		if err := exec.Command("xdg-open", url).Start(); err == nil {
			return nil
		}
		for _, browser := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			if err := exec.Command(browser, url).Start(); err == nil {
				return nil
			}
		}
		return fmt.Errorf("no browser available")
	}
}
