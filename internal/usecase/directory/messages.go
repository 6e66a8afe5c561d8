package directory

const (
	MsgMissingEntityType = "Erreur : veuillez renseigner un type d'entité (imputation ou salarié)"
	MsgInvalidEntityType = "Erreur : veuillez renseigner un type d'entité valide (imputation ou salarié)"
	MsgMissingProjectID  = "Erreur : veuillez fournir un code d'imputation"
	MsgMissingEmployeeID = "Erreur : veuillez fournir un matricule"

	remoteErrorTemplate = "Erreur : {message}"

	projectTemplate = `Imputation {id}
{label}
Affaire : {business_id}
Marché : {market_id}
Centre de gestion : {department_id}
Identifiant du client : {customer_id}
Matricule du responsable : {employee_responsible_id}
Date de début : {start_date}
Date de facturation : {invoice_date}`

	employeeTemplate = `Salarié {id}
{first_name} {last_name}
Login : {login}
Centre de gestion : {department_id}
Adresse e-mail : {work_email}
Date du début du contrat : {contract_start_date}`
)
