package common

import "fmt"

// UserAuthGuidance returns the error message shown when a tool that needs a
// user token is called while only client credentials are configured.
func UserAuthGuidance(toolName string) string {
	return fmt.Sprintf(`%s requires user authorization, but no Spotify user token is configured.

To enable user-authorized tools:

1. Create an app at https://developer.spotify.com/dashboard and add a redirect URI
2. Complete the authorization code flow for your account to obtain a refresh token
   (on the HTTP transports, open /oauth/login on this server to do this in the browser)
3. Set SPOTIFY_REFRESH_TOKEN in the server environment and restart

Client-credential tools (search, artists, albums, playlists, browse) keep working without it.`, toolName)
}
