package rental

const localityFields = `id name state postalCode`

const clientFields = `
	id firstName lastName email dni phoneNumber street
	locality { ` + localityFields + ` }`

const officeFields = `
	id name street
	locality { ` + localityFields + ` }`

const productFields = `id name brand sku description type price`

const supplierFields = `id name taxId email phoneNumber address`

const orderLineFields = `
	product { ` + productFields + ` }
	quantity quantityReceived price`

const pageFields = `page pages hasNext hasPrev`

const loginMutation = `
mutation Login($email: String!, $password: String!) {
	login(email: $email, password: $password) {
		token
	}
}`

const clientsQuery = `
query Clients($page: Int, $pageSize: Int, $query: String) {
	clients(page: $page, pageSize: $pageSize, query: $query) {
		` + pageFields + `
		objects {` + clientFields + `
		}
	}
}`

const clientQuery = `
query Client($id: ID!) {
	client(id: $id) {` + clientFields + `
	}
}`

const clientExistsQuery = `
query ClientExists($dni: String, $email: String) {
	clientExists(dni: $dni, email: $email)
}`

const createClientMutation = `
mutation CreateClient($input: ClientInput!) {
	createClient(input: $input) {
		client {` + clientFields + `
		}
	}
}`

const updateClientMutation = `
mutation UpdateClient($id: ID!, $input: ClientInput!) {
	updateClient(id: $id, input: $input) {
		client {` + clientFields + `
		}
	}
}`

const deleteClientMutation = `
mutation DeleteClient($id: ID!) {
	deleteClient(id: $id) {
		success
	}
}`

const productsQuery = `
query Products($first: Int, $after: String, $query: String, $type: String, $officeId: ID) {
	products(first: $first, after: $after, query: $query, type: $type, officeId: $officeId) {
		edges {
			node { ` + productFields + ` }
		}
		pageInfo { hasNextPage hasPreviousPage endCursor }
	}
}`

const productStockQuery = `
query ProductStock($productId: ID!, $startDate: Date!, $endDate: Date!) {
	productStockInRange(productId: $productId, startDate: $startDate, endDate: $endDate) {
		officeId officeName available
	}
}`

const productServicesQuery = `
query ProductServices($productId: ID!) {
	productServices(productId: $productId) {
		id name price billingType billingPeriod
	}
}`

const officesQuery = `
query Offices {
	offices {` + officeFields + `
	}
}`

const localitiesQuery = `
query Localities($query: String) {
	localities(query: $query) { ` + localityFields + ` }
}`

const createLocalityMutation = `
mutation CreateLocality($input: LocalityInput!) {
	createLocality(input: $input) {
		locality { ` + localityFields + ` }
	}
}`

const suppliersQuery = `
query Suppliers($page: Int, $pageSize: Int, $query: String) {
	suppliers(page: $page, pageSize: $pageSize, query: $query) {
		` + pageFields + `
		objects { ` + supplierFields + ` }
	}
}`

const purchasesQuery = `
query Purchases($page: Int, $pageSize: Int, $query: String, $officeId: ID, $startDate: Date, $endDate: Date) {
	purchases(page: $page, pageSize: $pageSize, query: $query, officeId: $officeId, startDate: $startDate, endDate: $endDate) {
		` + pageFields + `
		objects {
			id total createdOn
			client {` + clientFields + `
			}
			office {` + officeFields + `
			}
		}
	}
}`

const contractsQuery = `
query Contracts($page: Int, $pageSize: Int, $query: String, $officeId: ID, $status: String, $startDate: Date, $endDate: Date) {
	contracts(page: $page, pageSize: $pageSize, query: $query, officeId: $officeId, status: $status, startDate: $startDate, endDate: $endDate) {
		` + pageFields + `
		objects {
			id contractStart contractEnd status total createdOn
			client {` + clientFields + `
			}
			office {` + officeFields + `
			}
		}
	}
}`

const createContractMutation = `
mutation CreateContract($input: ContractInput!) {
	createContract(input: $input) {
		contract {
			id contractStart contractEnd status total createdOn
		}
	}
}`

const supplierOrdersQuery = `
query SupplierOrders($first: Int, $after: String, $officeId: ID, $supplierId: ID, $status: String) {
	supplierOrders(first: $first, after: $after, officeId: $officeId, supplierId: $supplierId, status: $status) {
		edges {
			node {
				id status total createdOn note
				supplier { ` + supplierFields + ` }
				officeDestination {` + officeFields + `
				}
				products {` + orderLineFields + `
				}
			}
		}
		pageInfo { hasNextPage hasPreviousPage endCursor }
	}
}`

const createSupplierOrderMutation = `
mutation CreateSupplierOrder($input: SupplierOrderInput!) {
	createSupplierOrder(input: $input) {
		supplierOrder { id status total createdOn note }
	}
}`

const internalOrderFields = `
	id status createdOn
	officeSource {` + officeFields + `
	}
	officeDestination {` + officeFields + `
	}
	products {` + orderLineFields + `
	}`

const internalOrdersQuery = `
query InternalOrders($page: Int, $pageSize: Int, $officeId: ID, $status: String) {
	internalOrders(page: $page, pageSize: $pageSize, officeId: $officeId, status: $status) {
		` + pageFields + `
		objects {` + internalOrderFields + `
		}
	}
}`

const createInternalOrderMutation = `
mutation CreateInternalOrder($input: InternalOrderInput!) {
	createInternalOrder(input: $input) {
		internalOrder {` + internalOrderFields + `
		}
	}
}`

const inProgressInternalOrderMutation = `
mutation InProgressInternalOrder($id: ID!) {
	inProgressInternalOrder(id: $id) {
		internalOrder {` + internalOrderFields + `
		}
	}
}`

const receiveInternalOrderMutation = `
mutation ReceiveInternalOrder($id: ID!, $items: [ReceivedItemInput!]!) {
	receiveInternalOrder(id: $id, items: $items) {
		internalOrder {` + internalOrderFields + `
		}
	}
}`
