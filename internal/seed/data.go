package seed

// User is a development account with a fixed id.
type User struct {
	ID          int
	Email       string
	Password    string
	DisplayName string
}

type Todo struct {
	Task     string
	Complete bool
	UserID   int
}

var Users = []User{
	{ID: 1, Email: "jon@user.com", Password: "1234", DisplayName: "Jon"},
	{ID: 2, Email: "ada@user.com", Password: "abcd", DisplayName: "Ada"},
}

var Todos = []Todo{
	{Task: "wash the dishes", Complete: false, UserID: 1},
	{Task: "walk the dog", Complete: true, UserID: 1},
	{Task: "learn go", Complete: false, UserID: 1},
	{Task: "water plants", Complete: false, UserID: 2},
	{Task: "buy groceries", Complete: true, UserID: 2},
}
