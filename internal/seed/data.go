package seed

import "github.com/xelth-com/linerecords/internal/models"

type validationItem struct {
	refIATF, refVDA, test, expected, example string
}

type validationCategory struct {
	code, title string
	items       []validationItem
}

var validationCatalog = []validationCategory{
	{
		code:  "safety",
		title: "1. SAFETY & EHS (Siguranță și Mediu)",
		items: []validationItem{
			{"7.1.3.1 (Siguranță)", "P6.4.1 (Mediu lucru)",
				"Pornește mașina în mod automat. Activează un element de siguranță (apasă E-Stop sau întrerupe cortina).",
				"Oprire Instantanee. Mașina nu trebuie să mai facă nicio mișcare mecanică. Resetarea necesită acțiune voită (buton albastru).",
				"Dacă bagi mâna prin cortină, cilindrul de presare se oprește imediat."},
			{"P6.4.1 (Conformitate)", "P6.4.1",
				"Caută plăcuța metalică de identificare pe șasiu. Verifică dacă are marcajul \"CE\".",
				"Marcaj Prezent. Plăcuța conține: Producător, An, Serie, Tensiune, Presiune, Marcaj CE.",
				"Plăcuța e nituită vizibil, nu e un abțibild care cade."},
			{"7.1.3.1 (Ergonomie)", "P6.4.1 (Ergonomie)",
				"Treci cu mâna (fără mănușă) pe la colțurile mașinii, profilele de aluminiu, sub masă. Verifică zgomotul în sarcină.",
				"Fără riscuri. Nu există muchii tăioase, bavuri metalice sau colțuri ascuțite.",
				"Profilele de aluminiu au capace de plastic. Cablurile nu atârnă."},
		},
	},
	{
		code:  "hardware",
		title: "2. CONSTRUCȚIE MECANICĂ & HARDWARE",
		items: []validationItem{
			{"8.5.4.1 (Protecție)", "P6.6.2 (Manipulare)",
				"Ia o piesă HMI vopsită. Așaz-o în cuib (nest) și scoate-o de 10 ori. Verifică piesa la lumină.",
				"Zero Zgârieturi. Suprafețele de contact trebuie să fie din material moale (Rășină, POM, Cauciuc).",
				"Cuibul e curat, nu are șuruburi metalice care ating fața piesei."},
			{"7.1.4 (Mediu)", "P6.4.3 (ESD)",
				"Măsoară cu aparatul ESD continuitatea între părțile metalice și pământare. Verifică materialele plastice.",
				"Disipativ / Conductiv. Toate metalele sunt legate la pământ. Plasticul de contact e negru (ESD Safe).",
				"Dacă atingi cu sonda șurubelnița electrică și masa, aparatul piuie."},
			{"P6.4.1 (Ordinea)", "P6.4.1",
				"Deschide dulapul electric și uită-te la fire. Verifică traseul cablurilor pe mașină.",
				"Etichetare & Ordine. Toate firele au etichete. Cablurile mobile sunt în lanț port-cablu.",
				"Pe fir scrie \"S12\" și pe senzor scrie \"S12\". Nu sunt fire lipite cu bandă."},
			{"10.2.4 (Poka-Yoke)", "P6.4.2 (Design)",
				"Încearcă să așezi piesa în cuib invers (rotită cu 180 grade sau cu fața în jos).",
				"Imposibil mecanic. Pinii de ghidare nu permit așezarea greșită a piesei.",
				"Piesa intră doar într-o singură poziție. Nu poți forța asamblarea greșită."},
		},
	},
	{
		code:  "capability",
		title: "3. CAPABILITATE & PROCES",
		items: []validationItem{
			{"7.1.5.1.1 (Statistica)", "P6.4.1 (Cmk)",
				"Rulează 50 de piese consecutive fără eroare. Cere raportul Cmk pentru caracteristica critică.",
				"Cmk >= 1.67. Procesul este stabil și centrat. Histogramă îngustă.",
				"Dacă ținta e 1.2 Nm, toate valorile sunt între 1.18 și 1.22."},
			{"7.1.5.1.1 (MSA)", "P6.4.1 (Precizie)",
				"Ia piesa \"Master\" (Etalon). Măsoar-o de 10 ori la rând pe aceeași mașină.",
				"Variație < 10%. Mașina arată aproape aceeași valoare de fiecare dată.",
				"Test Light Density: 500, 501, 499, 500 lux."},
			{"8.5.1.1 (Parametri)", "P6.2.3 (Setări)",
				"Compară foaia de parametri aprobată cu ce e setat în ecranul mașinii.",
				"Identic. Nu există abateri neaprobate.",
				"Timp lipire: Foaie = 3.5s vs Mașină = 3.5s."},
		},
	},
	{
		code:  "logic",
		title: "4. LOGICA DE REBUT & ERORI",
		items: []validationItem{
			{"10.2.4 (Detecție)", "P6.4.3 (Eroare)",
				"Introdu o piesă defectă (ex: fără un clips). Dă Start.",
				"STOP / NOK. Mașina detectează eroarea înainte de a finaliza procesul.",
				"Senzorul de prezență vede că lipsește clipsul."},
			{"10.2.3 (Interlock)", "P6.3.2 (Blocare)",
				"După ce mașina a dat NOK... Încearcă să bagi o piesă nouă imediat.",
				"Start Blocat. Nu poți porni ciclul nou până nu \"cureți\" eroarea.",
				"Butonul de Start e inactiv. HMI-ul afișează \"Acknowledge Scrap\"."},
			{"8.7.1.4 (Confirmare)", "P6.3.2 (Segregare)",
				"Când mașina cere \"Aruncă piesa\", bagă mâna în cutia de piese BUNE. Vezi dacă eroarea dispare.",
				"Nu se resetează. Eroarea dispare DOAR dacă senzorul vede mâna în cutia ROȘIE.",
				"Senzorul de pe cutia roșie trebuie să confirme fizic aruncarea."},
			{"8.5.1.1 (Acces)", "P6.2.3 (User)",
				"Loghează-te ca Operator. Încearcă să dezactivezi senzorul de la cutia de rebut.",
				"Acces Interzis. Operatorul nu poate modifica logica de control.",
				"Butonul de \"Settings\" este gri sau cere parolă."},
		},
	},
	{
		code:  "docs",
		title: "5. DOCUMENTAȚIE & MENTENANȚĂ",
		items: []validationItem{
			{"8.5.1.5 (Piese)", "P6.4.2 (Spare Parts)",
				"Cere cutia cu \"Start-up Kit\". Verifică dacă ai piesele critice.",
				"Fizic prezente. Nu semnezi recepția pe promisiuni.",
				"Ai în mână senzorul optic de rezervă și bitul de șurubelniță."},
			{"7.5.3.2 (Scheme)", "P6.4.2 (Manuale)",
				"Verifică dacă ai manualul de utilizare și schema electrică.",
				"Disponibil. Format digital (PDF) + O copie fizică la mașină.",
				"Schema electrică corespunde cu tabloul."},
		},
	},
}

type documentationCategory struct {
	code, titleKey, descKey string
	highlighted             bool
	items                   []string
}

// Titles and items are translation keys resolved by the UI.
var documentationCatalog = []documentationCategory{
	{"electrical", "docCatElectrical", "docCatElectricalDesc", false,
		[]string{"docElectricalSchematic", "docPlcProgramBackup", "docHmiProjectBackup", "docIoList"}},
	{"pneumatic", "docCatPneumatic", "docCatPneumaticDesc", false,
		[]string{"docPneumaticSchematic", "docValveTerminalList"}},
	{"mechanical", "docCatMechanical", "docCatMechanicalDesc", false,
		[]string{"docAssemblyDrawings", "docSparePartsList", "docWearPartsList"}},
	{"operation", "docCatOperation", "docCatOperationDesc", true,
		[]string{"docUserManual", "docMaintenancePlan", "docCeDeclaration", "docRiskAssessment"}},
}

var variantNames = []string{
	"90122-032/0000",
	"90122-034/0000",
	"90122-035/0000",
	"90122-037/0000",
	"90122-033/0000",
	"90122-036/0000",
}

var bomItems = []models.BomItem{
	{Station: "OP10", PartNumber: "13059-036/0000", Quantity: 2, Description: "Ax", VisualAidBgColor: "#ccffff"},
	{Station: "OP10", PartNumber: "12620-736/0000", Quantity: 2, Description: "Carcasa ax", VisualAidBgColor: "#ccffff"},
	{Station: "OP20", PartNumber: "10013-651/0000", Quantity: 2, Description: "Arc", VisualAidBgColor: "#ccffff"},
	{Station: "OP30", PartNumber: "12331-482/0000", Quantity: 1, Description: "Bezel scroll stanga mat", VisualAidBgColor: "#ccffff"},
	{Station: "OP30", PartNumber: "12331-483/0000", Quantity: 1, Description: "Bezel scroll dreapta mat", VisualAidBgColor: "#ccffff"},
	{Station: "OP40", PartNumber: "13073-141/0000", Quantity: 2, Description: "Rotita scroll mat", VisualAidBgColor: "#ccffff"},
	{Station: "OP60", PartNumber: "12620-734/0000", Quantity: 1, Description: "Carcasa Stranga", VisualAidBgColor: "#ffff00"},
	{Station: "OP60", PartNumber: "05055-276/0000", Quantity: 2, Description: "Lever", VisualAidBgColor: "#ccffff"},
	{Station: "OP110", PartNumber: "12331-481/0001", Quantity: 1, Description: "Back cover right", VisualAidBgColor: "#ccffff"},
}

type historyEntry struct {
	version, register, changes, createdBy, dateCreated, releasedBy, dateReleased string
}

var historyEntries = []historyEntry{
	{"00", "Formular BOM", "Emitere document", "Pakot Laszlo", "19.09.2012", "Braga Cristian", "19.09.2012"},
	{"01", "Formular BOM", "Actualizare document si transpunere in noul template", "Asandulesei Vladut", "15.04.2022", "Apostolescu Marius", "15.04.2022"},
}

const (
	supply220 = "AC 220V 50HZ single phase"
	supply400 = "AC 400V 50Hz 3~/N/PE - max. 32A"
)

var stations = []models.Equipment{
	{Station: "OP 10", Owner: models.OwnerCustomer, EqNumber: "1097268", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 20.1", Owner: models.OwnerPreh, EqNumber: "1097269", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 20.2", Owner: models.OwnerPreh, EqNumber: "1097271", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 30.1", Owner: models.OwnerPreh, EqNumber: "1097272", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 30.2", Owner: models.OwnerPreh, EqNumber: "1097273", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 40.1", Owner: models.OwnerPreh, EqNumber: "1097274", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 40.2", Owner: models.OwnerPreh, EqNumber: "1097275", PowerSupply: supply220, PowerKW: "1", AirSupplyBar: "no", AirSupplyDiam: "no"},
	{Station: "OP 50.1", Owner: models.OwnerPreh, EqNumber: "1097276", PowerSupply: supply220, PowerKW: "2", AirSupplyBar: "6", AirSupplyDiam: "12"},
	{Station: "OP 50.2", Owner: models.OwnerPreh, EqNumber: "1097277", PowerSupply: supply220, PowerKW: "2", AirSupplyBar: "6", AirSupplyDiam: "12"},
	{Station: "OP 60.1", Owner: models.OwnerPreh, EqNumber: "1097278", PowerSupply: supply220, PowerKW: "1,5", AirSupplyBar: "6", AirSupplyDiam: "12"},
	{Station: "OP 60.2", Owner: models.OwnerPreh, EqNumber: "1097279", PowerSupply: supply220, PowerKW: "1,5", AirSupplyBar: "6", AirSupplyDiam: "12"},
	{Station: "EOL 1", Owner: models.OwnerCustomer, EqNumber: "1097283", PowerSupply: supply400, AirSupplyBar: "6", AirSupplyDiam: "12"},
	{Station: "EOL 2", Owner: models.OwnerCustomer, EqNumber: "1097285", PowerSupply: supply400, AirSupplyBar: "6", AirSupplyDiam: "12"},
}

// stationDevices lists the network devices of the stations that have them
var stationDevices = map[string][]models.EquipmentDevice{
	"OP 50.1": {
		{DeviceType: "PLC 1217C DC/DC/DC", Name: "OP50-1=PLC-KF1", IPAddress: "172.19.123.150"},
		{DeviceType: "WAGO", Name: "OP50-1=PLC-KF2", IPAddress: "172.19.123.151"},
		{DeviceType: "HMI KTP700", Name: "KTP700_OP50-1", IPAddress: "172.19.123.152"},
		{DeviceType: "Vision Sensor", Name: "OP50-1-ST10-CR", IPAddress: "172.19.123.153"},
	},
	"OP 50.2": {
		{DeviceType: "PLC 1217C DC/DC/DC", Name: "OP50-2=PLC-KF1", IPAddress: "172.19.123.50"},
		{DeviceType: "WAGO", Name: "OP50-2=PLC-KF2", IPAddress: "172.19.123.51"},
		{DeviceType: "HMI KTP700", Name: "KTP700_OP50-2", IPAddress: "172.19.123.52"},
		{DeviceType: "Vision Sensor", Name: "OP50-2-ST10-CR", IPAddress: "172.19.123.53"},
	},
	"OP 60.1": {
		{DeviceType: "PLC 1217C DC/DC/DC", Name: "OP60-1=PLC-KF1", IPAddress: "172.19.123.60"},
		{DeviceType: "WAGO", Name: "OP60-1=PLC-KF2", IPAddress: "172.19.123.61"},
		{DeviceType: "HMI KTP700", Name: "KTP700_OP60-1", IPAddress: "172.19.123.62"},
		{DeviceType: "Vision Sensor", Name: "OP60-1-CR-UP", IPAddress: "172.19.123.64"},
		{DeviceType: "Vision Sensor", Name: "OP60-1-OB-UP", IPAddress: "172.19.123.65"},
		{DeviceType: "Vision Sensor", Name: "OP60-1-CR-DOWN", IPAddress: "172.19.123.66"},
	},
	"OP 60.2": {
		{DeviceType: "PLC 1217C DC/DC/DC", Name: "OP60-2=PLC-KF1", IPAddress: "172.19.123.160"},
		{DeviceType: "WAGO", Name: "OP60-2=PLC-KF2", IPAddress: "172.19.123.161"},
		{DeviceType: "HMI KTP700", Name: "KTP700_OP60-2", IPAddress: "172.19.123.162"},
		{DeviceType: "Vision Sensor", Name: "OP60-2-CR-UP", IPAddress: "172.19.123.164"},
		{DeviceType: "Vision Sensor", Name: "OP60-2-OB-UP", IPAddress: "172.19.123.165"},
		{DeviceType: "Vision Sensor", Name: "OP60-2-CR-DOWN", IPAddress: "172.19.123.166"},
	},
}
