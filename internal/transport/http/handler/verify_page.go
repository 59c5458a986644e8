package handler

import (
	"html/template"
	"net/http"
)

type verifyPageData struct {
	Name           string
	Email          string
	LoginToken     string
	FirebaseAPIKey string
}

// The success page exchanges its one-shot token for the stored credentials
// and signs the user in against the identity provider, all client-side. The
// server never talks to the provider itself.
var verifySuccessTmpl = template.Must(template.New("verify_success").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Email verified - Thread Heaven</title></head>
<body style="font-family:sans-serif;max-width:480px;margin:80px auto;text-align:center">
  <h1>You're verified{{if .Name}}, {{.Name}}{{end}}!</h1>
  <p id="status">Signing you in&hellip;</p>
  <p><a href="/">Back to the store</a></p>
  <script>
  (async function () {
    var status = document.getElementById("status");
    var apiKey = {{.FirebaseAPIKey}};
    try {
      var res = await fetch("/api/auth/login-token", {
        method: "POST",
        headers: {"Content-Type": "application/json"},
        body: JSON.stringify({token: {{.LoginToken}}})
      });
      if (!res.ok) throw new Error("login token rejected");
      var creds = await res.json();
      if (!apiKey) {
        status.textContent = "Your account is ready. You can sign in from the store.";
        return;
      }
      var base = "https://identitytoolkit.googleapis.com/v1/accounts:";
      var body = JSON.stringify({email: creds.email, password: creds.password, returnSecureToken: true});
      var opts = {method: "POST", headers: {"Content-Type": "application/json"}, body: body};
      await fetch(base + "signUp?key=" + apiKey, opts); // no-op if the account exists
      var login = await fetch(base + "signInWithPassword?key=" + apiKey, opts);
      if (!login.ok) throw new Error("sign-in failed");
      var session = await login.json();
      localStorage.setItem("th_session", JSON.stringify(session));
      status.textContent = "You're signed in. Welcome to Thread Heaven!";
    } catch (e) {
      status.textContent = "Your email is verified, but automatic sign-in failed. You can sign in from the store.";
    }
  })();
  </script>
</body>
</html>`))

var verifyErrorTmpl = template.Must(template.New("verify_error").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Verification failed - Thread Heaven</title></head>
<body style="font-family:sans-serif;max-width:480px;margin:80px auto;text-align:center">
  <h1>Verification failed</h1>
  <p>{{.Reason}}</p>
  <p><a href="/">Back to the store</a></p>
</body>
</html>`))

func renderVerifySuccess(w http.ResponseWriter, data verifyPageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = verifySuccessTmpl.Execute(w, data)
}

func renderVerifyError(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_ = verifyErrorTmpl.Execute(w, struct{ Reason string }{Reason: reason})
}
