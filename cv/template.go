package cv

import (
	"time"

	"github.com/kevinaaaquil/portfolio/backend/models"
)

const uibLogo = "https://media.snl.no/media/11669/standard_uib.png"

// Template returns the document written when an admin first opens a missing or empty CV.
func Template(now time.Time) *models.CV {
	return &models.CV{
		PersonalDetails: &models.PersonalDetails{
			Born:        "11.01.2002",
			LanguagesEN: "Norwegian (native), English (fluent)",
			LanguagesNO: "Norsk (morsmål), Engelsk (flytende)",
			UpdatedAt:   FormatTime(now),
		},
		Education: []models.Education{
			{
				ID:            "edu1",
				InstitutionEN: "University of Bergen",
				InstitutionNO: "Universitetet i Bergen",
				DegreeEN:      "Master's degree in Comparative Politics",
				DegreeNO:      "Mastergrad i sammenlignende politikk",
				Date:          "2025-2027",
				ThesisEN:      "Thesis Title: (To be determined)",
				ThesisNO:      "Tittel på masteroppgave: (Ikke bestemt)",
				Logo:          uibLogo,
			},
			{
				ID:            "edu2",
				InstitutionEN: "University of Bergen",
				InstitutionNO: "Universitetet i Bergen",
				DegreeEN:      "Bachelor's degree in Comparative Politics",
				DegreeNO:      "Bachelorgrad i sammenlignende politikk",
				Date:          "2022-2025",
				ThesisEN:      `Thesis Title: "The Elephant in the Room: How the GOP Paved the Way for Trump’s Populism"`,
				ThesisNO:      `Tittel på bacheloroppgave: "The Elephant in the Room: How the GOP Paved the Way for Trump’s Populism"`,
				SupervisorEN:  "Supervisor: Jonas Linde (UiB)",
				SupervisorNO:  "Veileder: Jonas Linde (UiB)",
				CoursesEN: "Courses: SAMPOL100 Introduction to Comparative Politics, SAMPOL103 Political ideologies, " +
					"SAMPOL105 State and Nation Building, SAMPOL106 Political Institutions in Established Democracies, " +
					"SAMPOL107 Political Mobilization, SAMPOL115 Democracy and Democratization, " +
					"MET102 Methods in the Social Sciences, SAMPOL203 Comparative Arctic Indigenous Governance, " +
					"SAMPOL226 Populism and its Consequences for Liberal Democracy, " +
					"SAMPOL233 Forsvar og totalforsvar i etablerte demokrati, SAMPOL230 Party Politics in Europa andutover, " +
					"SAMPOL235 The Politics and Global Governance of International Protection, " +
					"SAMPOL238 The Politics of Contestation, SAMPOL260 Bachelor Essay in Comparative Politics",
				CoursesNO: "Emner: SAMPOL100 Introduksjon til sammenlignende politikk, SAMPOL103 Politiske ideologier, " +
					"SAMPOL105 Stats- og nasjonsbygging, SAMPOL106 Politiske institusjoner i etablerte demokratier, " +
					"SAMPOL107 Politisk mobilisering, SAMPOL115 Demokrati og demokratisering, " +
					"MET102 Samfunnsvitenskapelige metoder, SAMPOL203 Sammenlignende urfolksstyring i Arktis, " +
					"SAMPOL226 Populisme og dens konsekvenser for liberalt demokrati, " +
					"SAMPOL233 Forsvar og totalforsvar i etablerte demokrati, SAMPOL230 Partipolitikk i Europa og utover, " +
					"SAMPOL235 Internasjonal beskyttelsespolitikk og global styring, SAMPOL238 Protestpolitikk, " +
					"SAMPOL260 Bacheloroppgave i sammenlignende politikk",
				Logo: uibLogo,
			},
		},
		Experience: []models.Experience{
			{
				ID:            "exp1",
				CompanyEN:     "United Nations Association of Norway",
				CompanyNO:     "FN-sambandet",
				PositionEN:    "Intern",
				PositionNO:    "Praktikant",
				Date:          "Jan 2025 - Jul 2025",
				DescriptionEN: "Unpaid internship as part of my Comparative Politics bachelor's degree (SAMPOL290 Comparative Politics Internship)",
				DescriptionNO: "Ulønnet praksisplass som del av bachelorgraden i sammenlignende politikk (SAMPOL290 Praksis i sammenlignende politikk)",
				Logo:          "https://media.snl.no/media/17348/standard_FN-sambandet-logo.png",
			},
		},
		Roles: []models.Role{
			{
				ID:             "role1",
				OrganizationEN: "University of Bergen",
				OrganizationNO: "Universitetet i Bergen",
				RoleEN:         "Representative on the University's Learning Environment Committee",
				RoleNO:         "Studentrepresentant i universitetets læringsmiljøutvalg",
				Date:           "2023-2025",
				DescriptionEN:  "Elected by the Student Parliament for two terms: 1 Aug 2023-31 Jul 2024 & 1 Aug 2024-31 Jul 2025",
				DescriptionNO:  "Valgt av Studentparlamentet for to perioder: 1. august 2023-31. juli 2024 og 1. august 2024-31. juli 2025",
				Logo:           uibLogo,
			},
			{
				ID:             "role2",
				OrganizationEN: "Sampolkonferansen (Comparative Politics Conference)",
				OrganizationNO: "Sampolkonferansen (Sammenlignende Politikk Konferanse)",
				RoleEN:         "PR Committee Member",
				RoleNO:         "Medlem av PR-komiteen",
				Date:           "2022-2023",
				DescriptionEN:  "Contributed to public relations and marketing efforts, with responsibility for the website and other communication channels",
				DescriptionNO:  "Bidro til PR- og markedsføringsarbeidet, med ansvar for netusiden og andre kommunikasjonskanaler",
				Logo:           "https://placehold.co/60x60/FF5733/FFFFFF?text=SC",
			},
			{
				ID:             "role3",
				OrganizationEN: "Social Democratic List",
				OrganizationNO: "Sosialdemokratiske liste",
				RoleEN:         "Head of the Social Democratic List",
				RoleNO:         "Listeleder for Sosialdemokratiske liste",
				Date:           "2023-2024",
				DescriptionEN:  "I was Head of the Social Democratic List at the University of Bergen Student Parliament, representing and coordinating the list's activities and initiatives from March 2023 to March 2024.",
				DescriptionNO:  "Jeg var listeleder for sosialdemokratisk liste ved Studentparlamentet ved Universitetet i Bergen, og representerte samt koordinerte listens aktiviteter og initiativ fra mars 2023 til mars 2024.",
				Logo:           "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRm4mvh0jdZ2t9qtEHCCjhqnnxs-XecXbQr8g&s",
			},
			{
				ID:             "role4",
				OrganizationEN: "Bergen AUF (Labour Party Youth Organisation)",
				OrganizationNO: "Bergen AUF (Arbeiderpartiets Ungdomsorganisasjon)",
				RoleEN:         "Board Member",
				RoleNO:         "Styremedlem",
				Date:           "2020-2024",
				Logo:           "https://media.snl.no/media/63475/standard_auf.png",
			},
			{
				ID:             "role5",
				OrganizationEN: "A-STUD (Labour Party Student Group in Bergen)",
				OrganizationNO: "A-STUD (Arbeiderpartiets Studentgruppe in Bergen)",
				RoleEN:         "Board Member",
				RoleNO:         "Styremedlem",
				Date:           "2024-2025",
				Logo:           "https://samskipnaden.imgix.net/foreninger/271707754_233769422243385_179932508120700312_n.png?w=3840&auto=compress,format",
			},
			{
				ID:             "role6",
				OrganizationEN: "The Architectural Uprising Bergen",
				OrganizationNO: "Arkitekturopprøret Bergen",
				RoleEN:         "Head of Communications",
				RoleNO:         "Kommunikasjonsansvarlig",
				Date:           "2024-Present",
				DescriptionEN:  "Responsible to key individuals, and for developing communication strategies for use on various political parties.",
				DescriptionNO:  "Ansvarlig overfor sentrale personer og for å utvikle kommunikasjonsstrategier for bruk ovenfor ulike politiske partier.",
				Logo:           "https://placehold.co/60x60/8B4513/FFFFFF?text=AB",
			},
		},
		Skills: []models.Skill{
			{ID: "skill1", NameEN: "Writing and editing", NameNO: "Skriving og redigering", Type: models.SkillIcon, Icon: "fas fa-pencil-alt"},
			{ID: "skill2", NameEN: "Research and analysis", NameNO: "Forskning og analyse", Type: models.SkillIcon, Icon: "fas fa-magnifying-glass"},
			{ID: "skill3", NameEN: "Communication", NameNO: "Kommunikasjon", Type: models.SkillIcon, Icon: "fas fa-comments"},
			{ID: "skill4", NameEN: "Speech writing", NameNO: "Taleskriving", Type: models.SkillIcon, Icon: "fas fa-microphone-alt"},
			{ID: "skill5", NameEN: "Project management", NameNO: "Prosjektledelse", Type: models.SkillIcon, Icon: "fas fa-tasks"},
			{ID: "skill6", NameEN: "Content creation and digital media", NameNO: "Innholdsproduksjon og digitale medier", Type: models.SkillIcon, Icon: "fas fa-video"},
			{
				ID:     "skill7",
				NameEN: "Languages (fluent in Norwegian and English)",
				NameNO: "Språk (flytende i norsk og engelsk)",
				Type:   models.SkillFlags,
				Flags: []string{
					"https://flagcdn.com/gb.svg",
					"https://upload.wikimedia.org/wikipedia/commons/d/d9/Flag_of_Norway.svg",
				},
			},
			{ID: "skill8", NameEN: "Microsoft Word", NameNO: "Microsoft Word", Type: models.SkillImage, Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/f/fd/Microsoft_Office_Word_%282019%E2%80%93present%29.svg/768px-Microsoft_Office_Word_%282019%E2%80%93present%29.svg.png"},
			{ID: "skill9", NameEN: "Microsoft PowerPoint", NameNO: "Microsoft PowerPoint", Type: models.SkillImage, Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0d/Microsoft_Office_PowerPoint_%282019%E2%80%93present%29.svg/768px-Microsoft_Office_PowerPoint_%282019%E2%80%93present%29.svg.png"},
			{ID: "skill10", NameEN: "Microsoft Excel", NameNO: "Microsoft Excel", Type: models.SkillImage, Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/3/34/Microsoft_Office_Excel_%282019%E2%80%93present%29.svg/768px-Microsoft_Office_Excel_%282019%E2%80%93present%29.svg.png"},
			{ID: "skill11", NameEN: "Windows", NameNO: "Windows", Type: models.SkillImage, Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/8/87/Windows_logo_-_2021.svg/640px-Windows_logo_-_2021.svg.png"},
			{ID: "skill12", NameEN: "Markdown", NameNO: "Markdown", Type: models.SkillIcon, Icon: "fa-brands fa-markdown"},
			{ID: "skill13", NameEN: "Obsidian.md", NameNO: "Obsidian.md", Type: models.SkillImage, Image: "https://upload.wikimedia.org/wikipedia/commons/thumb/1/10/2023_Obsidian_logo.svg/640px-2023_Obsidian_logo.png"},
		},
	}
}
