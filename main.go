package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/essentia/browsercore/browser"
)

func main() {
	cfg, err := browser.ConfigFromEnv()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	loader := browser.NewMapLoader()
	loader.Add("https://example.test/", []byte(
		"<!DOCTYPE html><html><head><title>Example</title></head>"+
			"<body><h1>Hello</h1><p>A tiny page.</p></body></html>",
	), browser.Metadata{ContentType: "text/html"})

	plugin := browser.NewBrowserPlugin(cfg, loader)
	tab := plugin.NewTab()
	if err := plugin.Navigate(tab, "https://example.test/"); err != nil {
		logrus.WithError(err).Fatal("navigating")
	}

	for {
		s, err := plugin.Tab(tab)
		if err != nil {
			logrus.WithError(err).Fatal("looking up tab")
		}
		if s.State() == browser.Ready || s.State() == browser.Failed {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	doc, err := plugin.DocumentFor(tab)
	if err != nil {
		logrus.WithError(err).Fatal("fetching document")
	}
	fmt.Println(doc.Dump())
}
