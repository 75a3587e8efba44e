package bundle

// Bundles exported by earlier releases carry Portuguese enum labels. They
// are mapped to the current constants on decode; unknown labels pass
// through untouched so the data is never lost.

var legacyRelationships = map[Relationship]Relationship{
	"Titular":     RelationshipHead,
	"Cônjuge":     RelationshipSpouse,
	"Filho(a)":    RelationshipChild,
	"Pai/Mãe":     RelationshipParent,
	"Avô/Avó":     RelationshipGrandparent,
	"Neto(a)":     RelationshipGrandchild,
	"Irmão/Irmã":  RelationshipSibling,
	"Tio(a)":      RelationshipUncleAunt,
	"Sobrinho(a)": RelationshipNephewNiece,
	"Enteado(a)":  RelationshipStepchild,
	"Outro":       RelationshipOther,
}

var legacyCivilStatuses = map[CivilStatus]CivilStatus{
	"Solteiro(a)":   CivilStatusSingle,
	"Casado(a)":     CivilStatusMarried,
	"Divorciado(a)": CivilStatusDivorced,
	"Viúvo(a)":      CivilStatusWidowed,
	"União Estável": CivilStatusStableUnion,
}

var legacyRoles = map[AgentRole]AgentRole{
	"Administrador (Master)": RoleAdmin,
	"Usuário Comum":          RoleOperator,
}

var legacyModes = map[SystemMode]SystemMode{
	"SERVIDOR_CENTRAL": ModeServer,
	"ESTACAO_COLETA":   ModeStation,
}

var legacyActions = map[Action]Action{
	"CRIAR":       ActionCreate,
	"EDITAR":      ActionEdit,
	"EXCLUIR":     ActionDelete,
	"GERAR_CHAVE": ActionGenerateKey,
	"SINCRONIZAR": ActionSync,
}

var legacyTargets = map[TargetType]TargetType{
	"RESIDENTE":  TargetResident,
	"AGENTE":     TargetAgent,
	"SISTEMA":    TargetSystem,
	"TERRITORIO": TargetTerritory,
	"LICENCA":    TargetLicense,
}

func relabel[T comparable](v T, table map[T]T) T {
	if mapped, ok := table[v]; ok {
		return mapped
	}
	return v
}

func normalizeLegacy(b *Bundle) {
	if b.Institution != nil {
		b.Institution.SystemMode = relabel(b.Institution.SystemMode, legacyModes)
	}
	for i := range b.Agents {
		b.Agents[i].Role = relabel(b.Agents[i].Role, legacyRoles)
	}
	for i := range b.Residents {
		r := &b.Residents[i]
		r.Relationship = relabel(r.Relationship, legacyRelationships)
		r.CivilStatus = relabel(r.CivilStatus, legacyCivilStatuses)
	}
	for i := range b.Logs {
		b.Logs[i].Action = relabel(b.Logs[i].Action, legacyActions)
		b.Logs[i].TargetType = relabel(b.Logs[i].TargetType, legacyTargets)
	}
}
