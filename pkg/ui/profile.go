package ui

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"igprofile/pkg/instagram"
)

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders a follower count with thousands separators
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// RenderProfile renders the profile as a bordered card
func (p *Printer) RenderProfile(profile *instagram.Profile, siteURL string) string {
	if profile == nil {
		return p.card.Render(p.dim.Render("no profile"))
	}

	handle := "@" + profile.Username
	if profile.IsVerified {
		handle += " ✓"
	}

	lines := []string{p.label.Render(handle)}
	if profile.FullName != "" {
		lines = append(lines, p.value.Render(profile.FullName))
	}
	if profile.Biography != "" {
		lines = append(lines, "", profile.Biography)
	}

	visibility := "public"
	if profile.IsPrivate {
		visibility = "private"
	}
	lines = append(lines,
		"",
		fmt.Sprintf("%s %s   %s %s   %s",
			p.label.Render("Followers"), FormatCount(profile.FollowersCount),
			p.label.Render("Following"), FormatCount(profile.FollowingCount),
			p.dim.Render(visibility)),
		p.dim.Render("ID "+profile.ID),
		p.dim.Render(instagram.ProfilePageURL(siteURL, profile.Username)),
	)

	return p.card.Render(strings.Join(lines, "\n"))
}

// Profile prints the profile card
func (p *Printer) Profile(profile *instagram.Profile, siteURL string) {
	fmt.Fprintln(p.out, p.RenderProfile(profile, siteURL))
}

// Images prints the image URLs as a numbered list
func (p *Printer) Images(urls []string) {
	if len(urls) == 0 {
		p.Warning("No images found. The profile might be private or the cookie might have expired.")
		return
	}

	p.Highlight(fmt.Sprintf("%d image(s)", len(urls)))
	width := len(fmt.Sprint(len(urls)))
	for i, url := range urls {
		fmt.Fprintf(p.out, "%s %s\n", p.dim.Render(fmt.Sprintf("%*d.", width, i+1)), url)
	}
}
