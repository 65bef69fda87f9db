/*
Package profilesdk is a Go client for the profiles account service.

Create a Client for the public endpoints and log in to obtain a Session for
the authenticated ones:

	client := profilesdk.NewClient("https://profiles.example.com")

	account, err := client.Signup(ctx, profilesdk.SignupRequest{
		Email:    "jane@example.com",
		Username: "jane",
		Password: "correct horse",
	})

	session, err := client.Login(ctx, "jane@example.com", "correct horse")
	me, err := session.Me(ctx)

Non-2xx responses are returned as *APIError. Use errors.As to inspect the
error code or the per-field validation details.
*/
package profilesdk
