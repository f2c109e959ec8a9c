package catalog

func dashboard() Group {
	return Group{
		Name:        "Dashboard Queries",
		Description: "Dashboard and analytics queries",
		Operations: []Operation{
			{
				Name:        "Get Dashboard Users",
				Description: "Get dashboard user counts (users, vendors, restaurants, riders)",
				Query: gql(`
					query GetDashboardUsers {
					  getDashboardUsers {
					    usersCount
					    vendorsCount
					    restaurantsCount
					    ridersCount
					  }
					}
				`),
			},
			{
				Name:        "Get Dashboard Users By Year",
				Description: "Get dashboard user counts filtered by year",
				Query: gql(`
					query GetDashboardUsersByYear($year: Int!) {
					  getDashboardUsersByYear(year: $year) {
					    usersCount
					    vendorsCount
					    restaurantsCount
					    ridersCount
					  }
					}
				`),
				Variables: map[string]any{"year": 2024},
			},
			{
				Name:        "Get Dashboard Orders By Type",
				Description: "Get dashboard orders grouped by type",
				Query: gql(`
					query GetDashboardOrdersByType {
					  getDashboardOrdersByType {
					    value
					    label
					  }
					}
				`),
			},
			{
				Name:        "Get Dashboard Sales By Type",
				Description: "Get dashboard sales grouped by type",
				Query: gql(`
					query GetDashboardSalesByType {
					  getDashboardSalesByType {
					    value
					    label
					  }
					}
				`),
			},
			{
				Name:        "Get Restaurant Dashboard Orders",
				Description: "Get restaurant dashboard orders and sales statistics",
				Query: gql(`
					query GetRestaurantDashboardOrdersSalesStats($restaurant: String!, $starting_date: String!, $ending_date: String!, $dateKeyword: String) {
					  getRestaurantDashboardOrdersSalesStats(restaurant: $restaurant, starting_date: $starting_date, ending_date: $ending_date, dateKeyword: $dateKeyword) {
					    totalOrders
					    totalSales
					    totalCODOrders
					    totalCardOrders
					  }
					}
				`),
				Variables: map[string]any{
					"restaurant":    "restaurant_id",
					"starting_date": "2024-01-01",
					"ending_date":   "2024-12-31",
					"dateKeyword":   "year",
				},
			},
			{
				Name:        "Get Vendor Dashboard Stats",
				Description: "Get vendor dashboard statistics card details",
				Query: gql(`
					query GetVendorDashboardStatsCardDetails($vendorId: String!, $dateKeyword: String, $starting_date: String!, $ending_date: String!) {
					  getVendorDashboardStatsCardDetails(vendorId: $vendorId, dateKeyword: $dateKeyword, starting_date: $starting_date, ending_date: $ending_date) {
					    totalRestaurants
					    totalOrders
					    totalSales
					    totalDeliveries
					  }
					}
				`),
				Variables: map[string]any{
					"vendorId":      "vendor_id",
					"dateKeyword":   "year",
					"starting_date": "2024-01-01",
					"ending_date":   "2024-12-31",
				},
			},
			{
				Name:        "Get Vendor Live Monitor",
				Description: "Get vendor live monitor data",
				Query: gql(`
					query GetLiveMonitorData($id: String!, $dateKeyword: String, $starting_date: String, $ending_date: String) {
					  getLiveMonitorData(id: $id, dateKeyword: $dateKeyword, starting_date: $starting_date, ending_date: $ending_date) {
					    online_stores
					    cancelled_orders
					    delayed_orders
					    ratings
					  }
					}
				`),
				Variables: map[string]any{
					"id":            "vendor_id",
					"dateKeyword":   "today",
					"starting_date": "2024-01-01",
					"ending_date":   "2024-12-31",
				},
			},
		},
	}
}
