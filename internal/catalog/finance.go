package catalog

func commissionRates() Group {
	return Group{
		Name:        "Commission Rates",
		Description: "Restaurant commission configuration",
		Operations: []Operation{{
			Name:        "Update Commission",
			Description: "Set the commission type and rate for a restaurant",
			Query: gql(`
				mutation UpdateCommission($id: String!, $commissionType: String!, $commissionRate: Float!) {
				  updateCommission(id: $id, commissionType: $commissionType, commissionRate: $commissionRate) {
				    _id
				    commissionRate
				    commissionType
				  }
				}
			`),
			Variables: map[string]any{
				"id":             "restaurant_id",
				"commissionType": "percentage",
				"commissionRate": 12.5,
			},
		}},
	}
}

func coupons() Group {
	coupon := map[string]any{
		"title":          "WELCOME50",
		"discount":       50,
		"enabled":        true,
		"minOrderAmount": 199,
	}
	return Group{
		Name:        "Coupons",
		Description: "Coupon queries and mutations",
		Operations: []Operation{
			{
				Name:        "Get Coupons",
				Description: "List all coupons",
				Query: gql(`
					query Coupons {
					  coupons {
					    _id
					    title
					    code
					    discount
					    enabled
					  }
					}
				`),
			},
			{
				Name:        "Create Coupon",
				Description: "Create a coupon",
				Query: gql(`
					mutation CreateCoupon($couponInput: CouponInput!) {
					  createCoupon(couponInput: $couponInput) {
					    _id
					    title
					    code
					    discount
					    enabled
					    minOrderAmount
					  }
					}
				`),
				Variables: map[string]any{"couponInput": coupon},
			},
			{
				Name:        "Edit Coupon",
				Description: "Update a coupon",
				Query: gql(`
					mutation editCoupon($couponInput: CouponInput!) {
					  editCoupon(couponInput: $couponInput) {
					    _id
					    title
					    code
					    discount
					    enabled
					    minOrderAmount
					  }
					}
				`),
				Variables: map[string]any{"couponInput": withID(coupon, "coupon_id")},
			},
			{
				Name:        "Delete Coupon",
				Description: "Delete a coupon",
				Query: gql(`
					mutation DeleteCoupon($id: String!) {
					  deleteCoupon(id: $id)
					}
				`),
				Variables: map[string]any{"id": "coupon_id"},
			},
		},
	}
}

func withID(in map[string]any, id string) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	out["_id"] = id
	return out
}
