package postman

import "fmt"

// LoginTokenPath is the response field the login script reads the token from.
const LoginTokenPath = "ownerLogin"

func LoginTokenEvent() Event {
	return Event{
		Listen: ListenTest,
		Script: Script{
			Exec: loginTokenExec(LoginTokenPath, TokenVariable),
			Type: ScriptTypeJS,
		},
	}
}

func loginTokenExec(field, variable string) []string {
	return []string{
		"if (pm.response.code === 200) {",
		"    var jsonData = pm.response.json();",
		fmt.Sprintf(
			"    if (jsonData && jsonData.data && jsonData.data.%[1]s && jsonData.data.%[1]s.token) {",
			field,
		),
		fmt.Sprintf(
			"        pm.collectionVariables.set(%q, jsonData.data.%s.token);",
			variable,
			field,
		),
		`        console.log("Token saved to collection variable");`,
		"    }",
		"}",
	}
}
