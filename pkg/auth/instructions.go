package auth

import (
	"fmt"
	"io"
	"strings"
)

// WriteCookieGuide writes step-by-step instructions for copying the session cookie from a browser
func WriteCookieGuide(w io.Writer) {
	line := strings.Repeat("=", 72)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "INSTAGRAM COOKIE GUIDE")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "igprofile calls Instagram's web API with your browser session cookie.")
	fmt.Fprintln(w, "It needs the full Cookie header, which must contain sessionid,")
	fmt.Fprintln(w, "ds_user_id and csrftoken.")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 1: Open https://www.instagram.com and log in")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 2: Open Developer Tools")
	fmt.Fprintln(w, "   Chrome/Edge/Brave/Firefox: F12 or Ctrl+Shift+I (Cmd+Option+I on Mac)")
	fmt.Fprintln(w, "   Safari: enable the Develop menu in Settings, then Cmd+Option+I")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 3: Go to the Network tab and refresh the page")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 4: Click any request to instagram.com, open Request Headers")
	fmt.Fprintln(w, "        and copy the whole value of the 'Cookie:' line")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "STEP 5: Save it")
	fmt.Fprintln(w, "   igprofile auth set            (stored in the keychain or an encrypted file)")
	fmt.Fprintln(w, "   export INSTAGRAM_COOKIE='sessionid=...; ds_user_id=...; csrftoken=...'")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "SECURITY WARNING:")
	fmt.Fprintln(w, "   The cookie gives full access to your Instagram account. Never share it.")
	fmt.Fprintln(w, "   Cookies expire; repeat these steps if requests start failing with 401.")
	fmt.Fprintln(w, line)
}

// WriteQuickGuide writes a one-line reminder for experienced users
func WriteQuickGuide(w io.Writer) {
	fmt.Fprintln(w, "Quick guide: F12 -> Network -> refresh -> any instagram.com request -> Request Headers -> Cookie")
	fmt.Fprintln(w, "   Need: sessionid=...; ds_user_id=...; csrftoken=...")
	fmt.Fprintln(w, "   Run 'igprofile auth guide' for detailed instructions")
}
