package entity

// User is the registration input. Password is plain text and only lives for the
// duration of the signup request.
type User struct {
	Email       string `json:"email" validate:"required,max=255"`
	Password    string `json:"password" validate:"required,max=72"`
	DisplayName string `json:"displayName" validate:"max=255"`
}

// Profile is the public projection of a user row. It never carries the hash.
type Profile struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Credentials is the verification-only projection used by signin.
type Credentials struct {
	ID   int
	Hash string
}

/*
Mysql Schema:
CREATE TABLE users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) COLLATE utf8mb4_bin NOT NULL,
	hash VARCHAR(255) NOT NULL,
	display_name VARCHAR(255) NOT NULL DEFAULT ''
);

CREATE UNIQUE INDEX email_idx ON users(email);
*/
