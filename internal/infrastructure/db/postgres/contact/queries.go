package contact

// Every statement takes the owner id as $1.
const (
	SelectContacts = `
		SELECT id, user_id, first_name, last_name, email, phone_number, born_date, description
		FROM contacts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`
	SelectContactByID = `
		SELECT id, user_id, first_name, last_name, email, phone_number, born_date, description
		FROM contacts
		WHERE user_id = $1 AND id = $2
	`
	// $2 is spliced into a LIKE pattern as is, so '%' and '_' in the search
	// term act as wildcards.
	SelectContactsByFirstName = `
		SELECT id, user_id, first_name, last_name, email, phone_number, born_date, description
		FROM contacts
		WHERE user_id = $1 AND first_name LIKE '%' || $2 || '%'
		ORDER BY id
	`
	SelectContactsByLastName = `
		SELECT id, user_id, first_name, last_name, email, phone_number, born_date, description
		FROM contacts
		WHERE user_id = $1 AND last_name LIKE '%' || $2 || '%'
		ORDER BY id
	`
	SelectContactsByEmail = `
		SELECT id, user_id, first_name, last_name, email, phone_number, born_date, description
		FROM contacts
		WHERE user_id = $1 AND email LIKE '%' || $2 || '%'
		ORDER BY id
	`
	// day and month are concatenated as unpadded text, see contact.BirthdayKeys.
	SelectContactsByBirthdayKeys = `
		SELECT id, user_id, first_name, last_name, email, phone_number, born_date, description
		FROM contacts
		WHERE user_id = $1
		  AND (EXTRACT(DAY FROM born_date)::int::text || EXTRACT(MONTH FROM born_date)::int::text) = ANY($2::text[])
		ORDER BY id
	`
	InsertContact = `
		INSERT INTO contacts (user_id, first_name, last_name, email, phone_number, born_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING
		  id, user_id, first_name, last_name, email, phone_number, born_date, description
	`
	UpdateContactByID = `
		UPDATE contacts
		SET first_name = $3,
		    last_name = $4,
		    email = $5,
		    phone_number = $6,
		    born_date = $7,
		    description = $8,
		    updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING
		  id, user_id, first_name, last_name, email, phone_number, born_date, description
	`
	DeleteContactByID = `
		DELETE FROM contacts
		WHERE user_id = $1 AND id = $2
		RETURNING
		  id, user_id, first_name, last_name, email, phone_number, born_date, description
	`
)
