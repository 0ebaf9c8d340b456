package assistant

// helpText is the built-in command reference shown by the help command.
const helpText = `List of built-in commands:

1. Command "hello" – displays the phrase "How can I help you?"

Example:
Input: "hello"
Output: "How can I help you?"

---

2. Command "add [name] [phone number]" – adds a new contact with the
given name and phone number.

Example:
Input: "add John 1234567890"
Output: "Contact added."

---

3. Command "change [name] [phone number]" – replaces the phone number
of an existing contact.

Example:
Input: "change John 0987654321"
Output: "Contact updated."

---

4. Command "phone [name]" – displays the phone numbers of the contact.

Example:
Input: "phone John"
Output: "0987654321"

---

5. Command "email [name] [email address]" – adds an email address to
the contact, or displays the stored addresses when the email address
is omitted.

Example:
Input: "email John john@example.com"
Output: "Email added."

---

6. Command "delete [name]" – deletes the contact with the given name.

Example:
Input: "delete John"
Output: "Contact deleted."

---

7. Command "all" – displays all saved contacts.

Example:
Input: "all"
Output: "Contact name: John, phones: 0987654321, emails: john@example.com"

---

8. Commands "close", "exit", "quit" – end the session.

Example:
Input: "exit"
Output: "Good bye!"`
