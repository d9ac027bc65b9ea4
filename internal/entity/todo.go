package entity

type Todo struct {
	ID       int    `json:"id"`
	Task     string `json:"task"`
	Complete bool   `json:"complete"`
	UserID   int    `json:"user_id"`
}

// TodoInput is the body accepted by create and update.
type TodoInput struct {
	Task     string `json:"task" validate:"required,max=1024"`
	Complete bool   `json:"complete"`
}

// DeletedTodo confirms a delete and carries the row as it was before removal.
type DeletedTodo struct {
	Deleted bool  `json:"deleted"`
	Todo    *Todo `json:"todo"`
}

// TodoEvent is published after every successful todo write.
type TodoEvent struct {
	Type string `json:"type"` // e.g., "created", "updated", "deleted"
	Todo Todo   `json:"todo"`
}

/*
Mysql Table

CREATE TABLE todos (
	id INT AUTO_INCREMENT PRIMARY KEY,
	task TEXT NOT NULL,
	complete BOOLEAN NOT NULL DEFAULT FALSE,
	user_id INT NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX todos_user_idx ON todos(user_id);
*/
