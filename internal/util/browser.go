package util

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// browserCommands 운영체제별로 시도할 브라우저 실행 명령 (앞에서부터)
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 는 Windows 7 에서도 동작한다
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		cmds := [][]string{{"xdg-open", url}}
		for _, b := range []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"} {
			cmds = append(cmds, []string{b, url})
		}
		return cmds
	}
}

// OpenBrowser 기본 브라우저로 url 을 연다
// 성공한 실행 파일 이름을 돌려준다. 모두 실패하면 첫 번째 실패 원인을 감싼 에러.
func OpenBrowser(url string) (string, error) {
	return openWith(browserCommands(runtime.GOOS, url), func(name string, args ...string) error {
		return exec.Command(name, args...).Start()
	})
}

func openWith(cmds [][]string, start func(name string, args ...string) error) (string, error) {
	var first error
	for _, c := range cmds {
		err := start(c[0], c[1:]...)
		if err == nil {
			return c[0], nil
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		first = errors.New("no browser command")
	}
	return "", errors.Wrapf(first, "open browser (%d commands tried)", len(cmds))
}
