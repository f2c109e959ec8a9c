package catalog

func authentication() Group {
	return Group{
		Name:        "Authentication",
		Description: "Authentication operations for admin/owner login",
		Operations: []Operation{{
			Name:        "Owner Login",
			Description: "Authenticate as admin/owner. Returns token that will be automatically saved to collection variable.",
			Query: gql(`
				mutation ownerLogin($email: String!, $password: String!) {
				  ownerLogin(email: $email, password: $password) {
				    userId
				    token
				    email
				    userType
				    restaurants {
				      _id
				      orderId
				      name
				      image
				      address
				    }
				    permissions
				    userTypeId
				    image
				    name
				  }
				}
			`),
			Variables: map[string]any{
				"email":    "herookie@tensi.org",
				"password": "9827453137",
			},
			Public: true,
			Login:  true,
		}},
	}
}
