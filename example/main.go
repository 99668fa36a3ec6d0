package main

import (
	"fmt"
	"net/http"
	"os"

	sanitizer "github.com/supergoodsystems/supergood-sanitizer"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/event"
)

func main() {
	s, err := sanitizer.New(&sanitizer.Options{
		OnKeep: func(ev *event.RequestEvent) {
			fmt.Printf("kept %s %s -> %d in %s\n", ev.Method, ev.URL, ev.Status, ev.Duration)
		},
		LogLevel: "debug",
	})
	if err != nil {
		panic(err)
	}
	defer s.Close()
	http.DefaultClient = s.DefaultClient

	for _, url := range []string{
		"https://httpbin.org/status/503",
		"https://httpbin.org/delay/3",
		"https://httpbin.org/image/png",
		"https://www.google-analytics.com/collect",
	} {
		resp, err := http.Get(url)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		resp.Body.Close()
	}
}
